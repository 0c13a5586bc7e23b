// test/mock/placement_fetcher.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	approval_model "github.com/dev-mohitbeniwal/offerwall/approval/model"
	"github.com/dev-mohitbeniwal/offerwall/model"
)

// MockPlacementFetcher is a mock implementation of service.PlacementFetcher
type MockPlacementFetcher struct {
	mock.Mock
}

func (m *MockPlacementFetcher) FetchPlacements(ctx context.Context, actor model.ActorContext, token string) (model.ActorContext, []model.PlacementRecord, error) {
	args := m.Called(ctx, actor, token)
	var records []model.PlacementRecord
	if v := args.Get(1); v != nil {
		records = v.([]model.PlacementRecord)
	}
	return args.Get(0).(model.ActorContext), records, args.Error(2)
}

// MockApprovalService is a mock implementation of service.IApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) Login(ctx context.Context, token string) (model.ActorContext, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.ActorContext), args.Error(1)
}

func (m *MockApprovalService) OnLogout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockApprovalService) OnPlacementMutationSucceeded(ctx context.Context, mutation model.PlacementMutation) {
	m.Called(ctx, mutation)
}

func (m *MockApprovalService) Session() model.ActorContext {
	args := m.Called()
	return args.Get(0).(model.ActorContext)
}

func (m *MockApprovalService) Access(ctx context.Context) approval_model.AccessView {
	args := m.Called(ctx)
	return args.Get(0).(approval_model.AccessView)
}

func (m *MockApprovalService) Refetch(ctx context.Context) approval_model.AccessView {
	args := m.Called(ctx)
	return args.Get(0).(approval_model.AccessView)
}
