package validator

import (
	"fmt"
	"reflect"
	"time"
)

// TypeValidator rejects values whose dynamic type is not the expected one.
type TypeValidator struct {
	name  string
	match func(value any) bool
}

// Type accepts values that can be asserted to T. For interface types this
// means the value implements T.
func Type[T any]() *TypeValidator {
	return &TypeValidator{
		name: reflect.TypeFor[T]().String(),
		match: func(value any) bool {
			_, ok := value.(T)
			return ok
		},
	}
}

// TypeOf is the reflection counterpart of Type, for types only known at run
// time.
func TypeOf(t reflect.Type) *TypeValidator {
	return &TypeValidator{
		name: t.String(),
		match: func(value any) bool {
			if value == nil {
				return false
			}
			vt := reflect.TypeOf(value)
			if t.Kind() == reflect.Interface {
				return vt.Implements(t)
			}
			return vt == t
		},
	}
}

// kinds accepts any value whose reflect.Kind is listed.
func kinds(name string, ks ...reflect.Kind) *TypeValidator {
	return &TypeValidator{
		name: name,
		match: func(value any) bool {
			if value == nil {
				return false
			}
			k := reflect.TypeOf(value).Kind()
			for _, want := range ks {
				if k == want {
					return true
				}
			}
			return false
		},
	}
}

// Presets for the scalar types records usually carry.
var (
	Integer = kinds("integer",
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
	)
	Float    = kinds("float", reflect.Float32, reflect.Float64)
	Boolean  = kinds("boolean", reflect.Bool)
	DateTime = Type[time.Time]()
)

// Name returns the expected type name used in error messages.
func (v *TypeValidator) Name() string {
	return v.name
}

func (v *TypeValidator) Validate(value any) error {
	if v.match(value) {
		return nil
	}
	return newError("validation.type",
		fmt.Sprintf("Expected a value of type %s; received value %v of type %T", v.name, value, value),
		map[string]any{
			"expected": v.name,
			"value":    value,
		},
	)
}

// StringValidator rejects values that are not text.
type StringValidator struct{}

// String returns a validator accepting only Go strings.
func String() StringValidator {
	return StringValidator{}
}

func (StringValidator) Validate(value any) error {
	if _, ok := value.(string); ok {
		return nil
	}
	return newError("validation.string",
		fmt.Sprintf("Not a valid string: <%v>", value),
		map[string]any{"value": value},
	)
}
