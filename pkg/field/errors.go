package field

import (
	"errors"

	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

var (
	// ErrIndexOutOfRange is returned by List accessors for indexes outside the list.
	ErrIndexOutOfRange = errors.New("list index out of range")

	// ErrNilInstance is returned when a nil record pointer is passed to Set.
	ErrNilInstance = errors.New("nil record instance")
)

// Re-exported error kinds so callers of this package need a single import.
var (
	ErrFieldRequired          = validator.ErrFieldRequired
	ErrValidationFailed       = validator.ErrValidationFailed
	ErrMalformedConfiguration = validator.ErrMalformedConfiguration
)
