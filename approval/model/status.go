package model

import (
	"time"

	"github.com/dev-mohitbeniwal/offerwall/model"
)

type Classification string

const (
	ClassificationBypass   Classification = "BYPASS"
	ClassificationApproved Classification = "APPROVED"
	ClassificationPending  Classification = "PENDING"
	ClassificationRejected Classification = "REJECTED"
	ClassificationNone     Classification = "NONE"
)

// GrantsAccess reports whether the classification lets the actor into the
// protected areas of the platform.
func (c Classification) GrantsAccess() bool {
	return c == ClassificationBypass || c == ClassificationApproved
}

// ResolvedStatus is a snapshot of the access decision for the current actor.
// Once handed out it must be treated as immutable, including its slices.
type ResolvedStatus struct {
	Classification  Classification          `json:"classification"`
	ApprovedRecord  *model.PlacementRecord  `json:"approvedRecord,omitempty"`
	PendingRecords  []model.PlacementRecord `json:"pendingRecords"`
	RejectedRecords []model.PlacementRecord `json:"rejectedRecords"`
	ResolvedAt      time.Time               `json:"resolvedAt"`
	Error           error                   `json:"-"`
}

// WithError returns a copy of s carrying err.
func (s ResolvedStatus) WithError(err error) ResolvedStatus {
	s.Error = err
	return s
}

// StatusChange is the payload published when an applied refresh changes the
// classification of the cached status.
type StatusChange struct {
	Actor    model.ActorContext `json:"actor"`
	Previous Classification     `json:"previous"`
	Current  ResolvedStatus     `json:"current"`
}
