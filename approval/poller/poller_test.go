package poller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/offerwall/approval/poller"
)

func TestPollerCallsRefetchUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- poller.New(5*time.Millisecond, func(context.Context) { calls.Add(1) }).Run(ctx)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestPollerDisabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	var calls atomic.Int32

	err := poller.New(0, func(context.Context) { calls.Add(1) }).Run(ctx)

	assert.NoError(t, err)
	assert.Zero(t, calls.Load())
}
