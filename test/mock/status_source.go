// test/mock/status_source.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/offerwall/model"
)

// MockStatusSource is a mock implementation of cache.StatusSource
type MockStatusSource struct {
	mock.Mock
}

func (m *MockStatusSource) Actor() model.ActorContext {
	args := m.Called()
	return args.Get(0).(model.ActorContext)
}

func (m *MockStatusSource) FetchPlacements(ctx context.Context) (model.ActorContext, []model.PlacementRecord, error) {
	args := m.Called(ctx)
	var records []model.PlacementRecord
	if v := args.Get(1); v != nil {
		records = v.([]model.PlacementRecord)
	}
	return args.Get(0).(model.ActorContext), records, args.Error(2)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	m.Called(ctx, eventType, payload)
}
