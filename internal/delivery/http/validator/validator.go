// Package validator adapts go-playground validation to Echo's Validator hook.
package validator

import (
	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a go-playground validator for Echo.
type CustomValidator struct {
	validator *playground.Validate
}

// New creates a validator with struct tag validation enabled.
func New() *CustomValidator {
	return &CustomValidator{
		validator: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}
