package field

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

// Option configures a Field at construction time.
type Option func(*options)

type options struct {
	defaultValue    any
	required        bool
	primary         bool
	list            bool
	validate        []any
	kind            *Kind
	validateOnWrite bool
	logger          *slog.Logger
	toStorage       func(any) any
	errs            []error
}

func (o *options) fail(format string, args ...any) {
	o.errs = append(o.errs, fmt.Errorf("%w: "+format, append([]any{ErrMalformedConfiguration}, args...)...))
}

// WithDefault sets the value callers may fall back to when nothing is stored.
// Get never substitutes it; use ValueOrDefault for that.
func WithDefault(v any) Option {
	return func(o *options) { o.defaultValue = v }
}

// Required makes nil values fail validation with ErrFieldRequired.
func Required() Option {
	return func(o *options) { o.required = true }
}

// Primary marks the field as the identifying attribute of its record.
func Primary() Option {
	return func(o *options) { o.primary = true }
}

// AsList makes the field hold a List of elements. Validation applies to each
// element.
func AsList() Option {
	return func(o *options) { o.list = true }
}

// WithValidators appends validators to the field's chain, in order.
func WithValidators(vs ...validator.Validator) Option {
	return func(o *options) {
		for _, v := range vs {
			if v == nil {
				o.fail("nil validator")
				continue
			}
			o.validate = append(o.validate, v)
		}
	}
}

// WithValidate accepts any spec validator.Normalize understands: a single
// validator, a function, or a slice of them.
func WithValidate(spec any) Option {
	return func(o *options) {
		if spec == nil {
			return
		}
		o.validate = append(o.validate, spec)
	}
}

// WithKind attaches the class-level hook run before the field's own
// validators. A field has at most one kind.
func WithKind(k *Kind) Option {
	return func(o *options) {
		switch {
		case k == nil:
			o.fail("nil kind")
		case o.kind != nil && o.kind != k:
			o.fail("conflicting kinds %q and %q", o.kind.Name, k.Name)
		default:
			o.kind = k
		}
	}
}

// WithValidateOnWrite makes Set validate the value before storing it.
// Off by default: Set stores whatever it is given and callers validate
// explicitly before persisting.
func WithValidateOnWrite(enabled bool) Option {
	return func(o *options) { o.validateOnWrite = enabled }
}

// WithLogger sets the logger used to report validation failures at debug
// level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStorage overrides the conversion ToStorage applies to non-nil values.
func WithStorage(fn func(any) any) Option {
	return func(o *options) {
		if fn == nil {
			o.fail("nil storage transform")
			return
		}
		o.toStorage = fn
	}
}
