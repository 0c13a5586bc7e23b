package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/offerwall/logging"
)

// Poller calls a refetch function on a fixed wall-clock interval. It lives
// outside the cache: refresh cadence is a consumer policy.
type Poller struct {
	interval time.Duration
	refetch  func(ctx context.Context)
}

func New(interval time.Duration, refetch func(ctx context.Context)) *Poller {
	return &Poller{interval: interval, refetch: refetch}
}

// Run blocks until ctx is done. A non-positive interval disables polling.
func (p *Poller) Run(ctx context.Context) error {
	if p.interval <= 0 {
		logger.Info("Approval status polling disabled")
		<-ctx.Done()
		return nil
	}

	logger.Info("Starting approval status polling", zap.Duration("interval", p.interval))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.refetch(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}
