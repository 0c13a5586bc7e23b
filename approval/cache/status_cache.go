package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/offerwall/approval/engine"
	approval_model "github.com/dev-mohitbeniwal/offerwall/approval/model"
	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

// DefaultTTL bounds how long a resolved status is served without asking the
// source again.
const DefaultTTL = 5 * time.Minute

// StatusSource supplies the current actor and their placements.
//
// Actor must not perform I/O: it is consulted on every Resolve to take the
// no-session and privileged fast paths. FetchPlacements performs the backend
// call and reports failures wrapping ErrNetworkFailure or
// ErrAuthorizationFailure.
type StatusSource interface {
	Actor() model.ActorContext
	FetchPlacements(ctx context.Context) (model.ActorContext, []model.PlacementRecord, error)
}

// Publisher is satisfied by util.EventBus.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

type Option func(*StatusCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *StatusCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *StatusCache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(c *StatusCache) {
		c.publisher = p
	}
}

type refresh struct {
	generation uint64
	done       chan struct{}
	status     approval_model.ResolvedStatus
}

// StatusCache holds the single resolved status for the process's current actor.
// The slot is written only when a refresh completes and by Invalidate.
type StatusCache struct {
	source    StatusSource
	ttl       time.Duration
	now       func() time.Time
	publisher Publisher

	mu         sync.Mutex
	entry      *approval_model.ResolvedStatus
	generation uint64
	inflight   *refresh
}

func NewStatusCache(source StatusSource, opts ...Option) *StatusCache {
	c := &StatusCache{
		source: source,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the access status of the current actor.
//
// A fresh cached entry is returned as is. While a refresh is in flight, callers
// that already have an entry to fall back on get it immediately instead of
// waiting; forced callers and callers with nothing cached wait for the running
// refresh rather than starting another one.
func (c *StatusCache) Resolve(ctx context.Context, forceRefresh bool) approval_model.ResolvedStatus {
	actor := c.source.Actor()
	if !actor.HasSession {
		logger.Debug("No session, resolving to no access")
		return approval_model.ResolvedStatus{
			Classification: approval_model.ClassificationNone,
			ResolvedAt:     c.now(),
		}
	}
	if actor.Role.Privileged() {
		status := engine.Classify(actor.Role, nil)
		status.ResolvedAt = c.now()
		return status
	}

	c.mu.Lock()
	if c.entry != nil && !forceRefresh {
		if c.now().Sub(c.entry.ResolvedAt) < c.ttl {
			status := *c.entry
			c.mu.Unlock()
			logger.Debug("Approval status cache hit", zap.String("classification", string(status.Classification)))
			return status
		}
		if c.inflight != nil {
			status := *c.entry
			c.mu.Unlock()
			logger.Debug("Serving stale approval status while refresh is in flight")
			return status
		}
	}
	r := c.inflight
	if r == nil {
		r = &refresh{generation: c.generation, done: make(chan struct{})}
		c.inflight = r
		// The source call outlives any single caller; waiters give up on their own.
		go c.run(context.WithoutCancel(ctx), r)
	}
	previous := c.entry
	c.mu.Unlock()

	select {
	case <-r.done:
		return r.status
	case <-ctx.Done():
		if previous != nil {
			return previous.WithError(ctx.Err())
		}
		return approval_model.ResolvedStatus{
			Classification: approval_model.ClassificationNone,
			ResolvedAt:     c.now(),
			Error:          ctx.Err(),
		}
	}
}

func (c *StatusCache) run(ctx context.Context, r *refresh) {
	start := c.now()
	actor, records, err := c.source.FetchPlacements(ctx)

	var fetched approval_model.ResolvedStatus
	if err == nil {
		fetched = engine.Classify(actor.Role, records)
		fetched.ResolvedAt = c.now()
	}

	c.mu.Lock()
	if c.inflight == r {
		c.inflight = nil
	}
	if r.generation != c.generation {
		c.mu.Unlock()
		logger.Info("Discarding approval status resolved before invalidation",
			zap.Uint64("generation", r.generation))
		r.status = approval_model.ResolvedStatus{
			Classification: approval_model.ClassificationNone,
			ResolvedAt:     c.now(),
			Error:          ow_errors.ErrStatusSuperseded,
		}
		close(r.done)
		return
	}

	previous := c.entry
	switch {
	case err != nil && previous != nil:
		stale := previous.WithError(err)
		c.entry = &stale
		r.status = stale
	case err != nil:
		r.status = approval_model.ResolvedStatus{
			Classification: approval_model.ClassificationNone,
			ResolvedAt:     c.now(),
			Error:          err,
		}
	default:
		c.entry = &fetched
		r.status = fetched
	}
	c.mu.Unlock()
	defer close(r.done)

	if err != nil {
		logger.Warn("Failed to refresh approval status, keeping last known status",
			zap.Error(err),
			zap.Bool("hasPrevious", previous != nil))
		return
	}

	logger.Info("Approval status refreshed",
		zap.String("userID", actor.UserID),
		zap.String("classification", string(fetched.Classification)),
		zap.Int("pending", len(fetched.PendingRecords)),
		zap.Int("rejected", len(fetched.RejectedRecords)),
		zap.Duration("duration", c.now().Sub(start)))

	previousClass := approval_model.ClassificationNone
	if previous != nil {
		previousClass = previous.Classification
	}
	if c.publisher != nil && previousClass != fetched.Classification {
		c.publisher.Publish(ctx, util.EventApprovalStatusChanged, approval_model.StatusChange{
			Actor:    actor,
			Previous: previousClass,
			Current:  fetched,
		})
	}
}

// Invalidate drops the cached status. A refresh still in flight is detached:
// its result will be discarded and the next Resolve starts a new one.
func (c *StatusCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.generation++
	c.inflight = nil
	c.mu.Unlock()
	logger.Debug("Approval status cache invalidated")
}

// Refreshing reports whether a source call is in flight.
func (c *StatusCache) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight != nil
}

// Peek returns the cached status without triggering a refresh.
func (c *StatusCache) Peek() (approval_model.ResolvedStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		return approval_model.ResolvedStatus{}, false
	}
	return *c.entry, true
}
