// audit/service.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	approval_model "github.com/dev-mohitbeniwal/offerwall/approval/model"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

type Service interface {
	Record(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, from, to time.Time, userID string) ([]AuditLog, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Record(ctx context.Context, log AuditLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = s.now()
	}
	return s.repo.Record(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, userID string) ([]AuditLog, error) {
	return s.repo.QueryLogs(ctx, from, to, userID)
}

// Subscribe records session and access-state events published on bus.
func Subscribe(bus *util.EventBus, svc Service) {
	bus.Subscribe(util.EventApprovalStatusChanged, statusChangedHandler(svc))
	bus.Subscribe(util.EventSessionLogin, sessionHandler(svc))
	bus.Subscribe(util.EventSessionLogout, sessionHandler(svc))
	bus.Subscribe(util.EventPlacementMutated, placementHandler(svc))
}

func statusChangedHandler(svc Service) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		change, ok := event.Payload.(approval_model.StatusChange)
		if !ok {
			return fmt.Errorf("invalid event payload type: %T", event.Payload)
		}
		entry := AuditLog{
			EventID:                event.ID,
			Timestamp:              change.Current.ResolvedAt,
			Event:                  event.Type,
			UserID:                 change.Actor.UserID,
			Role:                   string(change.Actor.Role),
			PreviousClassification: string(change.Previous),
			Classification:         string(change.Current.Classification),
			AccessGranted:          change.Current.Classification.GrantsAccess(),
		}
		if change.Current.ApprovedRecord != nil {
			entry.PlacementID = change.Current.ApprovedRecord.ID
		}
		details, err := json.Marshal(map[string]int{
			"pending":  len(change.Current.PendingRecords),
			"rejected": len(change.Current.RejectedRecords),
		})
		if err == nil {
			entry.ChangeDetails = details
		}
		return record(ctx, svc, entry)
	}
}

func sessionHandler(svc Service) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		actor, ok := event.Payload.(model.ActorContext)
		if !ok {
			return fmt.Errorf("invalid event payload type: %T", event.Payload)
		}
		return record(ctx, svc, AuditLog{
			EventID: event.ID,
			Event:   event.Type,
			UserID:  actor.UserID,
			Role:    string(actor.Role),
		})
	}
}

func placementHandler(svc Service) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		mutation, ok := event.Payload.(model.PlacementMutation)
		if !ok {
			return fmt.Errorf("invalid event payload type: %T", event.Payload)
		}
		details, _ := json.Marshal(map[string]string{"operation": mutation.Operation})
		return record(ctx, svc, AuditLog{
			EventID:       event.ID,
			Event:         event.Type,
			PlacementID:   mutation.PlacementID,
			ChangeDetails: details,
		})
	}
}

func record(ctx context.Context, svc Service, entry AuditLog) error {
	if err := svc.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry", zap.Error(err), zap.String("event", entry.Event))
		return err
	}
	return nil
}
