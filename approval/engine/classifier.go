package engine

import (
	approval_model "github.com/dev-mohitbeniwal/offerwall/approval/model"
	"github.com/dev-mohitbeniwal/offerwall/model"
)

// Classify maps a role and the actor's placements to a single access decision.
// It is pure: ResolvedAt and Error are left for the caller to fill.
//
// Priority is fixed: privileged role, then approved, pending, rejected, none.
// With several approved placements the first one in source order is reported.
func Classify(role model.Role, records []model.PlacementRecord) approval_model.ResolvedStatus {
	if role.Privileged() {
		return approval_model.ResolvedStatus{Classification: approval_model.ClassificationBypass}
	}

	approved, pending, rejected := Partition(records)

	status := approval_model.ResolvedStatus{
		PendingRecords:  pending,
		RejectedRecords: rejected,
	}
	switch {
	case len(approved) > 0:
		first := approved[0]
		status.Classification = approval_model.ClassificationApproved
		status.ApprovedRecord = &first
	case len(pending) > 0:
		status.Classification = approval_model.ClassificationPending
	case len(rejected) > 0:
		status.Classification = approval_model.ClassificationRejected
	default:
		status.Classification = approval_model.ClassificationNone
	}
	return status
}

// Partition splits records by normalized approval state, keeping input order
// within each group. The returned records carry the normalized state.
func Partition(records []model.PlacementRecord) (approved, pending, rejected []model.PlacementRecord) {
	for _, record := range records {
		record.ApprovalState = record.ApprovalState.Normalize()
		switch record.ApprovalState {
		case model.ApprovalStateApproved:
			approved = append(approved, record)
		case model.ApprovalStateRejected:
			rejected = append(rejected, record)
		default:
			pending = append(pending, record)
		}
	}
	return approved, pending, rejected
}
