package util_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/offerwall/util"
)

func TestEventBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := util.NewEventBus()
	bus.Start(ctx)

	t.Run("PublishReachesAllSubscribers", func(t *testing.T) {
		var calls atomic.Int32
		handler := func(ctx context.Context, e util.Event) error {
			assert.Equal(t, util.EventSessionLogout, e.Type)
			assert.NotEmpty(t, e.ID)
			calls.Add(1)
			return nil
		}
		bus.Subscribe(util.EventSessionLogout, handler)
		bus.Subscribe(util.EventSessionLogout, handler)

		bus.Publish(ctx, util.EventSessionLogout, nil)
		bus.Wait()

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("UnsubscribeStopsDelivery", func(t *testing.T) {
		var calls atomic.Int32
		id := bus.Subscribe(util.EventPlacementMutated, func(ctx context.Context, e util.Event) error {
			calls.Add(1)
			return nil
		})
		bus.Unsubscribe(util.EventPlacementMutated, id)

		bus.Publish(ctx, util.EventPlacementMutated, "p1")
		bus.Wait()

		assert.Zero(t, calls.Load())
	})

	t.Run("HandlerErrorsDoNotBlockPublish", func(t *testing.T) {
		bus.Subscribe(util.EventSessionLogin, func(ctx context.Context, e util.Event) error {
			return errors.New("boom")
		})
		for i := 0; i < 150; i++ {
			bus.Publish(ctx, util.EventSessionLogin, nil)
		}
		bus.Wait()
	})
}
