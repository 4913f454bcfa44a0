// Package validation checks request payloads with go-playground/validator and
// reports failures keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is returned for input that fails validation. Fields maps the JSON
// field name to a human readable reason.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+" "+msg)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// IsValidationError reports whether err is or wraps a *Error.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Validator wraps go-playground/validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates s using its `validate` tags.
func (v *Validator) Struct(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err, "")
	}
	return nil
}

// Var validates a single value against tag, reporting failures under name.
func (v *Validator) Var(name string, value any, tag string) error {
	if err := v.v.Var(value, tag); err != nil {
		return v.formatError(err, name)
	}
	return nil
}

func (v *Validator) formatError(err error, name string) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Field()
		if name != "" {
			field = name
		}
		fields[field] = friendlyMessage(e)
	}
	return &Error{Message: "validation failed", Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
