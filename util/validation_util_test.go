package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

func TestValidatePlacement(t *testing.T) {
	v := util.NewValidationUtil()

	assert.NoError(t, v.ValidatePlacement(model.PlacementRecord{ID: "p1", ApprovalState: "WHATEVER"}))
	assert.ErrorIs(t, v.ValidatePlacement(model.PlacementRecord{ApprovalState: model.ApprovalStateApproved}), ow_errors.ErrInvalidPlacementData)
}

func TestValidateActor(t *testing.T) {
	v := util.NewValidationUtil()

	assert.NoError(t, v.ValidateActor(model.ActorContext{UserID: "u1"}))
	assert.ErrorIs(t, v.ValidateActor(model.ActorContext{}), ow_errors.ErrInvalidSessionToken)
}
