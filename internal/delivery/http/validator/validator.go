// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "bitelog/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type requestValidator struct {
	validate *validator.Validate
}

// New creates an echo-compatible validator backed by go-playground/validator.
func New() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
