package field

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"sync"
	"weak"

	"github.com/dmitrymomot/fieldkit/pkg/logger"
	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

// Config is the immutable configuration of a Field.
type Config struct {
	Default         any
	Required        bool
	Primary         bool
	List            bool
	Kind            string
	Validators      validator.Chain
	ValidateOnWrite bool
}

// Field is a typed, validated attribute of records of type R, which must embed
// Record. One Field is shared by every R; values are stored per instance in a
// side table keyed by a weak reference to the record's identity handle, so a
// record can be collected while the field still exists. Stored values must
// not reference their own record, or the entry keeps it alive.
type Field[R any] struct {
	name      string
	cfg       Config
	kind      *Kind
	toStorage func(any) any
	log       *slog.Logger

	// The runtime runs cleanups on its own goroutine, so the table is
	// guarded even though the rest of the API is synchronous.
	mu   sync.Mutex
	data map[weak.Pointer[handle]]*slot
}

type slot struct {
	value   any
	cleanup runtime.Cleanup
}

// New creates a field bound to name. Options are checked once, here:
// contradictory or unusable settings are rejected instead of being ignored.
func New[R any](name string, opts ...Option) (*Field[R], error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	switch {
	case name == "":
		o.fail("field name is empty")
	case !isIdentifier(name):
		o.fail("field name %q must start with a letter or underscore and contain only letters, digits and underscores", name)
	}
	if msg := checkRecordType[R](); msg != "" {
		o.fail("field %q: %s", name, msg)
	}
	if o.primary && o.list {
		o.fail("field %q cannot be both primary and a list", name)
	}

	chain, err := validator.Normalize(o.validate)
	if err != nil {
		o.errs = append(o.errs, fmt.Errorf("field %q: %w", name, err))
	}
	if len(o.errs) > 0 {
		return nil, errors.Join(o.errs...)
	}

	f := &Field[R]{
		name: name,
		cfg: Config{
			Default:         o.defaultValue,
			Required:        o.required,
			Primary:         o.primary,
			List:            o.list,
			Validators:      chain,
			ValidateOnWrite: o.validateOnWrite,
		},
		kind:      o.kind,
		toStorage: o.toStorage,
		log:       o.logger,
		data:      make(map[weak.Pointer[handle]]*slot),
	}
	if f.kind != nil {
		f.cfg.Kind = f.kind.Name
	}
	if f.log == nil {
		f.log = logger.Discard()
	}

	if f.cfg.Default != nil {
		if f.cfg.List {
			if _, err := NewList(f.cfg.Default, nil); err != nil {
				return nil, fmt.Errorf("field %q default: %w", name, err)
			}
		}
		if err := f.Validate(name, f.cfg.Default); err != nil {
			return nil, fmt.Errorf("%w: field %q default: %w", ErrMalformedConfiguration, name, err)
		}
	}
	return f, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew[R any](name string, opts ...Option) *Field[R] {
	f, err := New[R](name, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the attribute name the field was bound to.
func (f *Field[R]) Name() string { return f.name }

// Config returns a copy of the field configuration.
func (f *Field[R]) Config() Config {
	cfg := f.cfg
	cfg.Validators = append(validator.Chain(nil), f.cfg.Validators...)
	return cfg
}

// Kind returns the class-level hook, or nil.
func (f *Field[R]) Kind() *Kind { return f.kind }

// Default returns the configured default value.
func (f *Field[R]) Default() any { return f.cfg.Default }

// Set stores v for r. List fields wrap v in a List bound to this field, which
// validates each element. Other values are validated only when the field was
// built WithValidateOnWrite.
func (f *Field[R]) Set(r *R, v any) error {
	if r == nil {
		return ErrNilInstance
	}
	if f.cfg.List {
		l, err := f.wrapList(v)
		if err != nil {
			return err
		}
		if l != nil {
			v = l
		}
	}
	if f.cfg.ValidateOnWrite {
		if err := f.Validate(f.name, v); err != nil {
			return err
		}
	}

	h := identityOf(r)
	key := weak.Make(h)
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.data[key]; ok {
		s.value = v
		return nil
	}
	s := &slot{value: v}
	s.cleanup = runtime.AddCleanup(h, f.forget, key)
	f.data[key] = s
	return nil
}

func (f *Field[R]) wrapList(v any) (*List, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil
	case *List:
		if l == nil {
			return nil, nil
		}
		if l.owner == ElementValidator(f) {
			return l, nil
		}
	}
	return NewList(v, f)
}

// Get returns the value stored for r, or nil. The default is never applied.
func (f *Field[R]) Get(r *R) any {
	v, _ := f.Lookup(r)
	return v
}

// Lookup returns the value stored for r and whether any value, nil included,
// was stored.
func (f *Field[R]) Lookup(r *R) (any, bool) {
	h := peekIdentity(r)
	if h == nil {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[weak.Make(h)]
	if !ok {
		return nil, false
	}
	return s.value, true
}

// ValueOrDefault returns the stored value for r, falling back to the default
// when nothing was stored. An explicitly stored nil is returned as nil.
// List defaults are returned as a fresh List.
func (f *Field[R]) ValueOrDefault(r *R) any {
	if v, ok := f.Lookup(r); ok {
		return v
	}
	if f.cfg.List && f.cfg.Default != nil {
		if l, err := NewList(f.cfg.Default, f); err == nil {
			return l
		}
	}
	return f.cfg.Default
}

// Unset removes the entry for r, so Lookup reports it as absent again.
func (f *Field[R]) Unset(r *R) {
	h := peekIdentity(r)
	if h == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := weak.Make(h)
	if s, ok := f.data[key]; ok {
		s.cleanup.Stop()
		delete(f.data, key)
	}
}

// Len returns the number of instances with a stored value.
func (f *Field[R]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

func identityOf[R any](r *R) *handle {
	return any(r).(identified).identity()
}

func peekIdentity[R any](r *R) *handle {
	if r == nil {
		return nil
	}
	return any(r).(identified).peek()
}

func (f *Field[R]) forget(key weak.Pointer[handle]) {
	f.mu.Lock()
	delete(f.data, key)
	f.mu.Unlock()
}

// Validate checks value for the field reported as name:
//  1. nil fails with ErrFieldRequired when the field is required and passes
//     otherwise, skipping everything below;
//  2. the kind hook runs;
//  3. the validators run in order and the first failure is returned.
//
// List fields apply steps 1-3 to every element of a List or slice value.
func (f *Field[R]) Validate(name string, value any) error {
	return f.report(name, value, f.validate(name, value))
}

func (f *Field[R]) validate(name string, value any) error {
	if !f.cfg.List || isNil(value) {
		return f.validateOne(name, value)
	}

	items, ok := iterate(value)
	if !ok {
		return decorate(name, IsList.Validate(value))
	}
	for i, item := range items {
		if err := f.validateOne(fmt.Sprintf("%s[%d]", name, i), item); err != nil {
			return err
		}
	}
	return nil
}

// ValidateElement checks a single list element. List calls it on every
// mutation.
func (f *Field[R]) ValidateElement(value any) error {
	return f.report(f.name, value, f.validateOne(f.name, value))
}

func (f *Field[R]) report(name string, value any, err error) error {
	if err != nil {
		f.log.Debug("field validation failed",
			logger.Field(name),
			logger.Value(value),
			logger.Error(err),
		)
	}
	return err
}

func (f *Field[R]) validateOne(name string, value any) error {
	if isNil(value) {
		if f.cfg.Required {
			return validator.Required(name)
		}
		return nil
	}
	if f.kind != nil && f.kind.Validator != nil {
		if err := f.kind.Validator.Validate(value); err != nil {
			return decorate(name, err)
		}
	}
	return decorate(name, f.cfg.Validators.Validate(value))
}

// ToStorage converts value to its storage representation. Lists become
// []any of converted elements; other values go through the WithStorage
// transform, then the kind's, and are returned unchanged otherwise.
func (f *Field[R]) ToStorage(value any) any {
	if l, ok := value.(*List); ok {
		if l == nil {
			return nil
		}
		out := make([]any, 0, l.Len())
		for _, item := range l.All() {
			out = append(out, f.elementToStorage(item))
		}
		return out
	}
	return f.elementToStorage(value)
}

func (f *Field[R]) elementToStorage(value any) any {
	switch {
	case value == nil:
		return nil
	case f.toStorage != nil:
		return f.toStorage(value)
	case f.kind != nil && f.kind.ToStorage != nil:
		return f.kind.ToStorage(value)
	}
	return value
}

func decorate(name string, err error) error {
	if err == nil {
		return nil
	}
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return verr.WithField(name)
	}
	return &validator.ValidationError{Field: name, Message: err.Error()}
}

// isIdentifier reports whether name is an ASCII identifier. Names end up as
// column names and named query arguments, which accept nothing else.
func isIdentifier(name string) bool {
	for i, c := range []byte(name) {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return name != ""
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
