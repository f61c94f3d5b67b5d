package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure produced by this package or by the field layer
// wraps exactly one of them, so callers can tell them apart with errors.Is.
var (
	// ErrValidationFailed is wrapped by every validator constraint violation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFieldRequired is wrapped when a required field receives a nil value.
	ErrFieldRequired = errors.New("field is required")

	// ErrMalformedConfiguration is returned when a validator, field or list is
	// configured with values it cannot work with.
	ErrMalformedConfiguration = errors.New("malformed configuration")
)

// ValidationError describes a single failure with translation support.
// Field is empty when the error comes straight from a Validator; the field
// layer fills it in before returning the error to its caller.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any

	// Err is the error kind. Nil means ErrValidationFailed.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidationFailed
	}
	return e.Err
}

// WithField returns a copy of e bound to the given field name.
func (e *ValidationError) WithField(field string) *ValidationError {
	cp := *e
	cp.Field = field
	return &cp
}

// newError builds a constraint violation with the given translation key.
func newError(key, message string, values map[string]any) *ValidationError {
	return &ValidationError{
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}

// Required returns the error reported when field received nil but must not.
func Required(field string) *ValidationError {
	return &ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("Value <%s> is required.", field),
		TranslationKey: "validation.required",
		TranslationValues: map[string]any{
			"field": field,
		},
		Err: ErrFieldRequired,
	}
}

// ValidationErrors collects failures from independent fields.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports ErrValidationFailed for any non-empty collection, and the kind of
// any contained error otherwise.
func (ve ValidationErrors) Is(target error) bool {
	if target == ErrValidationFailed {
		return true
	}
	for i := range ve {
		if errors.Is(&ve[i], target) {
			return true
		}
	}
	return false
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Append adds err to the collection. Errors that are not ValidationError are
// recorded under field with their message.
func (ve *ValidationErrors) Append(field string, err error) {
	if err == nil {
		return
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		cp := *verr
		if cp.Field == "" {
			cp.Field = field
		}
		ve.Add(cp)
		return
	}
	ve.Add(ValidationError{Field: field, Message: err.Error(), Err: err})
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

// IsValidationError reports whether err is a constraint violation or a
// missing required value.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrFieldRequired)
}
