// util/notification_service.go

package util

import (
	"context"

	"go.uber.org/zap"

	approval_model "github.com/dev-mohitbeniwal/offerwall/approval/model"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
)

// NotificationService announces approval transitions. Delivery to the
// dashboard's notification list happens downstream of the log stream.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyStatusChange(ctx context.Context, change approval_model.StatusChange) error {
	fields := []zap.Field{
		zap.String("userID", change.Actor.UserID),
		zap.String("previous", string(change.Previous)),
		zap.String("current", string(change.Current.Classification)),
	}

	switch change.Current.Classification {
	case approval_model.ClassificationApproved:
		if change.Current.ApprovedRecord != nil {
			fields = append(fields, zap.String("placementID", change.Current.ApprovedRecord.ID))
		}
		logger.Info("NOTIFICATION: Placement approved, platform access granted", fields...)
	case approval_model.ClassificationRejected:
		for _, rejected := range change.Current.RejectedRecords {
			logger.Info("NOTIFICATION: Placement rejected",
				append(fields,
					zap.String("placementID", rejected.ID),
					zap.String("rejectionReason", rejected.RejectionReason),
					zap.String("reviewMessage", rejected.ReviewMessage))...)
		}
	case approval_model.ClassificationPending:
		logger.Info("NOTIFICATION: Placement awaiting approval", fields...)
	default:
		logger.Info("NOTIFICATION: Platform access state changed", fields...)
	}
	return nil
}
