package validator

import (
	"cmp"
	"fmt"
	"reflect"
	"time"
	"unicode/utf8"
)

// CleanFunc projects a value before it is compared with the limit.
type CleanFunc func(value any) (any, error)

// Predicate reports whether the cleaned value violates the limit.
type Predicate func(cleaned, limit any) (bool, error)

// LimitValidator compares a cleaned value with a fixed limit.
type LimitValidator struct {
	limit   any
	clean   CleanFunc
	fails   Predicate
	message string
	key     string
}

// NewLimit builds a comparator validator. message is a fmt format where
// %[1]v is the limit and %[2]v the cleaned value. A nil clean means Identity.
func NewLimit(limit any, clean CleanFunc, fails Predicate, message, key string) *LimitValidator {
	if clean == nil {
		clean = Identity
	}
	return &LimitValidator{
		limit:   limit,
		clean:   clean,
		fails:   fails,
		message: message,
		key:     key,
	}
}

// MaxValue rejects values greater than limit.
func MaxValue(limit any) *LimitValidator {
	return NewLimit(limit, Identity, Greater,
		"Ensure this value is less than or equal to %[1]v (it is %[2]v).",
		"validation.max_value")
}

// MinValue rejects values less than limit.
func MinValue(limit any) *LimitValidator {
	return NewLimit(limit, Identity, Less,
		"Ensure this value is greater than or equal to %[1]v (it is %[2]v).",
		"validation.min_value")
}

// MaxLength rejects values longer than limit.
func MaxLength(limit int) *LimitValidator {
	return NewLimit(limit, Length, Greater,
		"Ensure this value has length of at most %[1]v (it has length %[2]v).",
		"validation.max_length")
}

// MinLength rejects values shorter than limit.
func MinLength(limit int) *LimitValidator {
	return NewLimit(limit, Length, Less,
		"Ensure this value has length of at least %[1]v (it has length %[2]v).",
		"validation.min_length")
}

// Limit returns the configured limit.
func (v *LimitValidator) Limit() any {
	return v.limit
}

func (v *LimitValidator) Validate(value any) error {
	cleaned, err := v.clean(value)
	if err != nil {
		return err
	}
	failed, err := v.fails(cleaned, v.limit)
	if err != nil {
		return err
	}
	if !failed {
		return nil
	}
	return newError(v.key,
		fmt.Sprintf(v.message, v.limit, cleaned),
		map[string]any{
			"limit_value": v.limit,
			"show_value":  cleaned,
		},
	)
}

// Identity returns the value unchanged.
func Identity(value any) (any, error) {
	return value, nil
}

type sized interface {
	Len() int
}

// Length returns the number of elements of value. Strings are measured in
// runes.
func Length(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), nil
	case sized:
		return v.Len(), nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), nil
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), nil
	}
	return nil, newError("validation.length",
		fmt.Sprintf("Value <%v> of type %T has no length", value, value),
		map[string]any{"value": value},
	)
}

// Greater fails when cleaned > limit.
func Greater(cleaned, limit any) (bool, error) {
	c, err := Compare(cleaned, limit)
	return c > 0, err
}

// Less fails when cleaned < limit.
func Less(cleaned, limit any) (bool, error) {
	c, err := Compare(cleaned, limit)
	return c < 0, err
}

// Compare orders two values of compatible kinds: any mix of Go numbers,
// strings, or time.Time values. Other combinations are a validation failure.
func Compare(a, b any) (int, error) {
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return cmp.Compare(av.String(), bv.String()), nil
	case isNumber(av) && isNumber(bv):
		return compareNumbers(av, bv), nil
	}
	return 0, newError("validation.comparable",
		fmt.Sprintf("Cannot compare value <%v> of type %T with limit <%v> of type %T", a, a, b, b),
		map[string]any{"value": a, "limit": b},
	)
}

func isNumber(v reflect.Value) bool {
	return isSigned(v) || isUnsigned(v) || isFloat(v)
}

func isSigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func compareNumbers(a, b reflect.Value) int {
	switch {
	case isSigned(a) && isSigned(b):
		return cmp.Compare(a.Int(), b.Int())
	case isUnsigned(a) && isUnsigned(b):
		return cmp.Compare(a.Uint(), b.Uint())
	case isSigned(a) && isUnsigned(b):
		if a.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.Int()), b.Uint())
	case isUnsigned(a) && isSigned(b):
		if b.Int() < 0 {
			return 1
		}
		return cmp.Compare(a.Uint(), uint64(b.Int()))
	}
	return cmp.Compare(toFloat(a), toFloat(b))
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isSigned(v):
		return float64(v.Int())
	case isUnsigned(v):
		return float64(v.Uint())
	}
	return v.Float()
}
