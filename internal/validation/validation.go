// Package validation checks and normalizes request input before it reaches storage
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error reports every field that failed validation, not just the first one
type Error struct {
	Fields   []string
	Messages []string
}

// Error implements the error interface
func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Has reports whether the given field failed validation
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

func (e *Error) add(field, message string) {
	e.Fields = append(e.Fields, field)
	e.Messages = append(e.Messages, message)
}

// AsError extracts a validation error from err, if any
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// IsEmpty reports whether a submitted value counts as missing.
// Absent keys, null and blank strings are all treated the same way.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// Required checks that every field in required is present and non-empty in data.
// All missing fields are reported in the order they were requested.
func Required(data map[string]any, required ...string) error {
	out := &Error{}
	for _, field := range required {
		if IsEmpty(data[field]) {
			out.add(field, field+" is required")
		}
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

// Struct validates a struct using its `validate` tags and reports all failures
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &Error{}
	for _, fe := range ve {
		out.add(fe.Field(), fieldError(fe))
	}
	return out
}

// Merge combines several validation results into one, keeping every field.
// Non-validation errors are returned as-is.
func Merge(errs ...error) error {
	out := &Error{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		ve, ok := AsError(err)
		if !ok {
			return err
		}
		out.Fields = append(out.Fields, ve.Fields...)
		out.Messages = append(out.Messages, ve.Messages...)
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

// Invalid builds a single-field validation error
func Invalid(field, message string) error {
	e := &Error{}
	e.add(field, message)
	return e
}

// fieldError converts a single FieldError into a human-readable message
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "latitude":
		return field + " must be a valid latitude"
	case "longitude":
		return field + " must be a valid longitude"
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
