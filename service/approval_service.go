// service/approval_service.go
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/offerwall/approval/cache"
	approval_model "github.com/dev-mohitbeniwal/offerwall/approval/model"
	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

// IApprovalService defines the operations the HTTP layer needs
type IApprovalService interface {
	Login(ctx context.Context, token string) (model.ActorContext, error)
	OnLogout(ctx context.Context) error
	OnPlacementMutationSucceeded(ctx context.Context, mutation model.PlacementMutation)
	Session() model.ActorContext
	Access(ctx context.Context) approval_model.AccessView
	Refetch(ctx context.Context) approval_model.AccessView
}

// ApprovalService ties the session, the approval status cache and its
// invalidation triggers together.
type ApprovalService struct {
	session         *SessionService
	cache           *cache.StatusCache
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IApprovalService = &ApprovalService{}

func NewApprovalService(session *SessionService, statusCache *cache.StatusCache, notificationSvc *util.NotificationService, eventBus *util.EventBus) *ApprovalService {
	service := &ApprovalService{
		session:         session,
		cache:           statusCache,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe(util.EventApprovalStatusChanged, service.handleStatusChanged)

	return service
}

// Login opens a session for token. Any cached status belonged to the previous
// actor and is dropped.
func (s *ApprovalService) Login(ctx context.Context, token string) (model.ActorContext, error) {
	actor, err := s.session.Open(token)
	if err != nil {
		logger.Warn("Rejected session token", zap.Error(err))
		return model.ActorContext{}, err
	}
	s.cache.Invalidate()
	s.eventBus.Publish(context.WithoutCancel(ctx), util.EventSessionLogin, actor)
	return actor, nil
}

func (s *ApprovalService) OnLogout(ctx context.Context) error {
	actor := s.session.Actor()
	had := s.session.Close()
	s.cache.Invalidate()
	if !had {
		return ow_errors.ErrNoSession
	}
	logger.Info("Session closed", zap.String("userID", actor.UserID))
	s.eventBus.Publish(context.WithoutCancel(ctx), util.EventSessionLogout, actor)
	return nil
}

func (s *ApprovalService) OnPlacementMutationSucceeded(ctx context.Context, mutation model.PlacementMutation) {
	s.cache.Invalidate()
	logger.Info("Placement mutation invalidated approval status",
		zap.String("placementID", mutation.PlacementID),
		zap.String("operation", mutation.Operation))
	s.eventBus.Publish(context.WithoutCancel(ctx), util.EventPlacementMutated, mutation)
}

func (s *ApprovalService) Session() model.ActorContext {
	return s.session.Actor()
}

func (s *ApprovalService) Access(ctx context.Context) approval_model.AccessView {
	return s.resolve(ctx, false)
}

// Refetch forces a resolution, bypassing the freshness window.
func (s *ApprovalService) Refetch(ctx context.Context) approval_model.AccessView {
	return s.resolve(ctx, true)
}

func (s *ApprovalService) resolve(ctx context.Context, force bool) approval_model.AccessView {
	actor := s.session.Actor()
	status := s.cache.Resolve(ctx, force)

	if errors.Is(status.Error, ow_errors.ErrAuthorizationFailure) && actor.HasSession {
		s.forceLogout(ctx, actor, status.Error)
		return approval_model.NewAccessView(approval_model.ResolvedStatus{
			Classification: approval_model.ClassificationNone,
			ResolvedAt:     status.ResolvedAt,
			Error:          status.Error,
		}, false)
	}

	loading := status.Classification != approval_model.ClassificationBypass && s.cache.Refreshing()
	return approval_model.NewAccessView(status, loading)
}

// forceLogout ends the session of actor after the backend rejected it. A
// session opened by someone else in the meantime is left alone.
func (s *ApprovalService) forceLogout(ctx context.Context, actor model.ActorContext, cause error) {
	if !s.session.CloseIf(actor.UserID) {
		logger.Info("Session changed before forced logout, keeping it", zap.String("rejectedUserID", actor.UserID))
		return
	}
	logger.Warn("Backend rejected session, forcing logout", zap.String("userID", actor.UserID), zap.Error(cause))
	s.cache.Invalidate()
	s.eventBus.Publish(context.WithoutCancel(ctx), util.EventSessionLogout, actor)
}

func (s *ApprovalService) handleStatusChanged(ctx context.Context, event util.Event) error {
	change, ok := event.Payload.(approval_model.StatusChange)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return errors.New("invalid approval status change payload")
	}
	return s.notificationSvc.NotifyStatusChange(ctx, change)
}
