package field

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

// Kind is the validation hook shared by every field of one type. It runs
// before the field's own validators and may define how values are stored.
type Kind struct {
	Name      string
	Validator validator.Validator
	ToStorage func(value any) any
}

var (
	StringKind  = &Kind{Name: "string", Validator: validator.String()}
	IntegerKind = &Kind{Name: "integer", Validator: validator.Integer}
	FloatKind   = &Kind{Name: "float", Validator: validator.Float}
	BooleanKind = &Kind{Name: "boolean", Validator: validator.Boolean}

	// DateTimeKind stores times in UTC.
	DateTimeKind = &Kind{
		Name:      "datetime",
		Validator: validator.DateTime,
		ToStorage: func(v any) any {
			if t, ok := v.(time.Time); ok {
				return t.UTC()
			}
			return v
		},
	}

	// UUIDKind stores identifiers in their canonical string form.
	UUIDKind = &Kind{
		Name:      "uuid",
		Validator: validator.UUID(),
		ToStorage: func(v any) any {
			if id, ok := v.(uuid.UUID); ok {
				return id.String()
			}
			return v
		},
	}
)

// Kinds lists the predefined kinds by name.
var Kinds = map[string]*Kind{
	StringKind.Name:   StringKind,
	IntegerKind.Name:  IntegerKind,
	FloatKind.Name:    FloatKind,
	BooleanKind.Name:  BooleanKind,
	DateTimeKind.Name: DateTimeKind,
	UUIDKind.Name:     UUIDKind,
}

func NewString[R any](name string, opts ...Option) (*Field[R], error) {
	return New[R](name, append([]Option{WithKind(StringKind)}, opts...)...)
}

func NewInteger[R any](name string, opts ...Option) (*Field[R], error) {
	return New[R](name, append([]Option{WithKind(IntegerKind)}, opts...)...)
}

func NewFloat[R any](name string, opts ...Option) (*Field[R], error) {
	return New[R](name, append([]Option{WithKind(FloatKind)}, opts...)...)
}

func NewBoolean[R any](name string, opts ...Option) (*Field[R], error) {
	return New[R](name, append([]Option{WithKind(BooleanKind)}, opts...)...)
}

func NewDateTime[R any](name string, opts ...Option) (*Field[R], error) {
	return New[R](name, append([]Option{WithKind(DateTimeKind)}, opts...)...)
}

func NewUUID[R any](name string, opts ...Option) (*Field[R], error) {
	return New[R](name, append([]Option{WithKind(UUIDKind)}, opts...)...)
}
