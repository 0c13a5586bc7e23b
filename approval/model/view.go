package model

import (
	"errors"
	"time"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	"github.com/dev-mohitbeniwal/offerwall/model"
)

// AccessView is the UI-facing projection of a ResolvedStatus.
type AccessView struct {
	Classification             Classification          `json:"classification"`
	CanAccessPlatform          bool                    `json:"canAccessPlatform"`
	ShouldShowApprovalRequired bool                    `json:"shouldShowApprovalRequired"`
	ShouldShowPendingMessage   bool                    `json:"shouldShowPendingMessage"`
	HasApprovedPlacement       bool                    `json:"hasApprovedPlacement"`
	HasPendingPlacement        bool                    `json:"hasPendingPlacement"`
	HasRejectedPlacement       bool                    `json:"hasRejectedPlacement"`
	ApprovedPlacement          *model.PlacementRecord  `json:"approvedPlacement,omitempty"`
	PendingPlacements          []model.PlacementRecord `json:"pendingPlacements"`
	RejectedPlacements         []model.PlacementRecord `json:"rejectedPlacements"`
	Loading                    bool                    `json:"loading"`
	Error                      string                  `json:"error,omitempty"`
	ErrorKind                  string                  `json:"errorKind,omitempty"`
	ResolvedAt                 time.Time               `json:"resolvedAt"`
}

const (
	ErrorKindNetwork       = "network"
	ErrorKindAuthorization = "authorization"
	ErrorKindSuperseded    = "superseded"
	ErrorKindUnknown       = "unknown"
)

// NewAccessView projects status for rendering. Access is withheld while a
// resolution is loading.
func NewAccessView(status ResolvedStatus, loading bool) AccessView {
	view := AccessView{
		Classification:             status.Classification,
		CanAccessPlatform:          status.Classification.GrantsAccess() && !loading,
		ShouldShowApprovalRequired: !status.Classification.GrantsAccess(),
		ShouldShowPendingMessage:   status.Classification == ClassificationPending,
		HasApprovedPlacement:       status.ApprovedRecord != nil,
		HasPendingPlacement:        len(status.PendingRecords) > 0,
		HasRejectedPlacement:       len(status.RejectedRecords) > 0,
		ApprovedPlacement:          status.ApprovedRecord,
		PendingPlacements:          status.PendingRecords,
		RejectedPlacements:         status.RejectedRecords,
		Loading:                    loading,
		ResolvedAt:                 status.ResolvedAt,
	}
	if view.PendingPlacements == nil {
		view.PendingPlacements = []model.PlacementRecord{}
	}
	if view.RejectedPlacements == nil {
		view.RejectedPlacements = []model.PlacementRecord{}
	}
	if status.Error != nil {
		view.Error = status.Error.Error()
		view.ErrorKind = ErrorKind(status.Error)
	}
	return view
}

// ErrorKind buckets a resolution error for the UI.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ow_errors.ErrAuthorizationFailure):
		return ErrorKindAuthorization
	case errors.Is(err, ow_errors.ErrNetworkFailure):
		return ErrorKindNetwork
	case errors.Is(err, ow_errors.ErrStatusSuperseded):
		return ErrorKindSuperseded
	default:
		return ErrorKindUnknown
	}
}
