package validation

import (
	"fmt"
	"strings"
)

// Validator collects field validation errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks if a value is present
func (v *Validator) Required(field string, value interface{}) {
	if value == nil {
		v.AddError(field, "must not be nil")
		return
	}

	switch val := value.(type) {
	case string:
		v.Check(strings.TrimSpace(val) != "", field, "must not be empty")
	case float64:
		v.Check(val != 0, field, "must not be zero")
	case int:
		v.Check(val != 0, field, "must not be zero")
	}
}

// Positive checks that a number is strictly greater than zero.
func (v *Validator) Positive(field string, value float64) {
	v.Check(value > 0, field, "must be a positive number")
}

// Range checks that a number falls within [min, max].
func (v *Validator) Range(field string, value, min, max float64) {
	v.Check(value >= min && value <= max, field,
		fmt.Sprintf("must be between %v and %v", min, max))
}

// Message flattens the error map into a single human-readable string.
func (v *Validator) Message() string {
	parts := make([]string, 0, len(v.Errors))
	for field, msg := range v.Errors {
		parts = append(parts, field+" "+msg)
	}
	return strings.Join(parts, "; ")
}
