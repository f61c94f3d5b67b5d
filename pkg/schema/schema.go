package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fieldkit/pkg/field"
)

// ErrInvalidSchema wraps every problem found while parsing or building a schema.
var ErrInvalidSchema = errors.New("invalid schema")

// Document is the YAML form of a field list.
type Document struct {
	Fields []Declaration `yaml:"fields"`
}

// Declaration describes one field.
type Declaration struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind,omitempty"`
	Required   bool            `yaml:"required,omitempty"`
	Primary    bool            `yaml:"primary,omitempty"`
	List       bool            `yaml:"list,omitempty"`
	Default    any             `yaml:"default,omitempty"`
	Validators []ValidatorSpec `yaml:"validators,omitempty"`
}

// Parse decodes a schema document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	return decode(bytes.NewReader(data))
}

// Load reads and parses the schema file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return &doc, nil
}

// Schema is an ordered set of fields for records of type R.
type Schema[R any] struct {
	fields  []*field.Field[R]
	byName  map[string]*field.Field[R]
	primary *field.Field[R]
}

// Build creates one field per declaration, in document order. opts are
// applied to every field after the declared settings, so callers can add a
// logger or turn on validation on write.
func Build[R any](doc *Document, opts ...field.Option) (*Schema[R], error) {
	s := &Schema[R]{byName: make(map[string]*field.Field[R])}
	if doc == nil {
		return s, nil
	}

	var errs []error
	for i, decl := range doc.Fields {
		f, err := build[R](decl, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("field #%d %q: %w", i, decl.Name, err))
			continue
		}
		if _, dup := s.byName[f.Name()]; dup {
			errs = append(errs, fmt.Errorf("field #%d: duplicate name %q", i, f.Name()))
			continue
		}
		if f.Config().Primary {
			if s.primary != nil {
				errs = append(errs, fmt.Errorf("field #%d %q: %q is already primary", i, f.Name(), s.primary.Name()))
				continue
			}
			s.primary = f
		}
		s.fields = append(s.fields, f)
		s.byName[f.Name()] = f
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(errs...))
	}
	return s, nil
}

func build[R any](decl Declaration, extra []field.Option) (*field.Field[R], error) {
	var opts []field.Option
	if decl.Kind != "" {
		k, ok := field.Kinds[fold(decl.Kind)]
		if !ok {
			return nil, fmt.Errorf("unknown kind %q", decl.Kind)
		}
		opts = append(opts, field.WithKind(k))
	}
	if decl.Required {
		opts = append(opts, field.Required())
	}
	if decl.Primary {
		opts = append(opts, field.Primary())
	}
	if decl.List {
		opts = append(opts, field.AsList())
	}
	if decl.Default != nil {
		opts = append(opts, field.WithDefault(decl.Default))
	}
	for _, spec := range decl.Validators {
		v, err := spec.Validator()
		if err != nil {
			return nil, err
		}
		opts = append(opts, field.WithValidators(v))
	}
	opts = append(opts, extra...)
	return field.New[R](decl.Name, opts...)
}

// Fields returns the fields in declaration order.
func (s *Schema[R]) Fields() []*field.Field[R] {
	return append([]*field.Field[R](nil), s.fields...)
}

// Field returns the field bound to name.
func (s *Schema[R]) Field(name string) (*field.Field[R], bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Primary returns the primary field, or nil when none was declared.
func (s *Schema[R]) Primary() *field.Field[R] {
	return s.primary
}

func (s *Schema[R]) Len() int {
	return len(s.fields)
}
