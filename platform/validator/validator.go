// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the application's custom rules
// registered.
func New() *Validator {
	v := validator.New()

	// dgt0 validates that a decimal field is strictly positive. Surface
	// areas, conductivities, efficiencies and consumptions all use it.
	_ = v.RegisterValidation("dgt0", decimalGreaterThanZero)

	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	switch value := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return value.IsPositive()
	case *decimal.Decimal:
		return value != nil && value.IsPositive()
	default:
		return false
	}
}
