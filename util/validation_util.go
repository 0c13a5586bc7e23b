// util/validation_util.go

package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	"github.com/dev-mohitbeniwal/offerwall/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

// ValidatePlacement checks a record received from a status source. The
// approval state is not checked here: unknown states are normalized later.
func (v *ValidationUtil) ValidatePlacement(placement model.PlacementRecord) error {
	if err := v.validate.Struct(placement); err != nil {
		return fmt.Errorf("%w: %v", ow_errors.ErrInvalidPlacementData, err)
	}
	return nil
}

// ValidateActor checks the actor derived from session claims.
func (v *ValidationUtil) ValidateActor(actor model.ActorContext) error {
	if actor.UserID == "" {
		return fmt.Errorf("%w: subject claim is empty", ow_errors.ErrInvalidSessionToken)
	}
	return nil
}
