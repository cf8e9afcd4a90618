// Package validator adapts go-playground/validator for echo's request validation.
package validator

import (
	playgroundvalidator "github.com/go-playground/validator/v10"

	domainerrors "passport/internal/domain/errors"
)

// echoValidator wraps a validator instance so echo can call it via c.Validate.
type echoValidator struct {
	validate *playgroundvalidator.Validate
}

// New creates the validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{
		validate: playgroundvalidator.New(playgroundvalidator.WithRequiredStructEnabled()),
	}
}

// Validate checks the struct tags on a bound request payload.
// Failures surface as the domain validation error so the error handler can
// render them with a consistent envelope.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
