package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/canvasedit/internal/config/loader"
)

// ErrValidationFailed is matched by every *ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ParseError is returned when a config file cannot be parsed.
type ParseError = loader.ParseError

// FieldError describes one invalid setting.
type FieldError struct {
	// Path is the dotted setting path, e.g. history.max_entries.
	Path    string
	Message string
	Value   any
}

func (e FieldError) String() string {
	return e.Path + " " + e.Message
}

// ValidationError lists every invalid setting of a Config.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// newValidationError converts validator output into a *ValidationError.
func newValidationError(errs validator.ValidationErrors) *ValidationError {
	ve := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, e := range errs {
		ve.Fields = append(ve.Fields, FieldError{
			Path:    fieldPath(e),
			Message: formatFieldError(e),
			Value:   e.Value(),
		})
	}
	return ve
}

// fieldPath turns Config.History.max_entries into history.max_entries.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	return strings.ToLower(ns)
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return "is invalid"
	}
}
