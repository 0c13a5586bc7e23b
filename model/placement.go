// model/placement.go
package model

import (
	"strings"
	"time"
)

// ApprovalState is the review state of a placement as reported by the backend.
type ApprovalState string

const (
	ApprovalStateApproved        ApprovalState = "APPROVED"
	ApprovalStatePendingApproval ApprovalState = "PENDING_APPROVAL"
	ApprovalStateRejected        ApprovalState = "REJECTED"
)

// Normalize maps any value outside the closed set to PENDING_APPROVAL so that an
// unrecognised state never grants access.
func (s ApprovalState) Normalize() ApprovalState {
	switch ApprovalState(strings.ToUpper(strings.TrimSpace(string(s)))) {
	case ApprovalStateApproved:
		return ApprovalStateApproved
	case ApprovalStateRejected:
		return ApprovalStateRejected
	default:
		return ApprovalStatePendingApproval
	}
}

// PlacementRecord is one integration point registered by an actor. Records are
// owned by the backend and are only ever read here.
type PlacementRecord struct {
	ID              string        `json:"id" validate:"required"`
	ApprovalState   ApprovalState `json:"approvalState"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	ReviewMessage   string        `json:"reviewMessage,omitempty"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
}

type PlacementMutation struct {
	PlacementID string `json:"placementId" binding:"required"`
	Operation   string `json:"operation" binding:"required,oneof=created updated"`
}
