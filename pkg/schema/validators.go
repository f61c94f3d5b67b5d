package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

var folder = cases.Fold()

// fold normalizes a validator or kind name: case-folded, dashes as
// underscores.
func fold(name string) string {
	return strings.ReplaceAll(folder.String(strings.TrimSpace(name)), "-", "_")
}

// ValidatorSpec is one entry of a declaration's validator list: either a
// bare name ("url") or a single-key map carrying an argument
// ("max_length: 20").
type ValidatorSpec struct {
	Name string
	Arg  *yaml.Node
}

func (s *ValidatorSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Name = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: validator map must have exactly one key", node.Line)
		}
		s.Name = node.Content[0].Value
		s.Arg = node.Content[1]
		return nil
	}
	return fmt.Errorf("line %d: validator must be a name or a single-key map", node.Line)
}

func (s ValidatorSpec) MarshalYAML() (any, error) {
	if s.Arg == nil {
		return s.Name, nil
	}
	return map[string]*yaml.Node{s.Name: s.Arg}, nil
}

type regexArg struct {
	Pattern string   `yaml:"pattern"`
	Flags   []string `yaml:"flags"`
}

var regexFlags = map[string]validator.Flag{
	"ignorecase": validator.IgnoreCase,
	"i":          validator.IgnoreCase,
	"multiline":  validator.Multiline,
	"m":          validator.Multiline,
	"dotall":     validator.DotAll,
	"s":          validator.DotAll,
}

// Validator builds the named validator.
func (s ValidatorSpec) Validator() (validator.Validator, error) {
	name := fold(s.Name)
	switch name {
	case "string":
		return s.noArg(validator.String())
	case "url":
		return s.noArg(validator.URL())
	case "uuid":
		return s.noArg(validator.UUID())
	case "integer":
		return s.noArg(validator.Integer)
	case "float":
		return s.noArg(validator.Float)
	case "boolean":
		return s.noArg(validator.Boolean)
	case "datetime":
		return s.noArg(validator.DateTime)
	case "max_value", "min_value":
		var limit any
		if err := s.decode(&limit); err != nil {
			return nil, err
		}
		if name == "max_value" {
			return validator.MaxValue(limit), nil
		}
		return validator.MinValue(limit), nil
	case "max_length", "min_length":
		var limit int
		if err := s.decode(&limit); err != nil {
			return nil, err
		}
		if limit < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidSchema, s.Name)
		}
		if name == "max_length" {
			return validator.MaxLength(limit), nil
		}
		return validator.MinLength(limit), nil
	case "regex":
		return s.regex()
	}
	return nil, fmt.Errorf("%w: unknown validator %q", ErrInvalidSchema, s.Name)
}

func (s ValidatorSpec) noArg(v validator.Validator) (validator.Validator, error) {
	if s.Arg != nil {
		return nil, fmt.Errorf("%w: validator %q takes no argument", ErrInvalidSchema, s.Name)
	}
	return v, nil
}

func (s ValidatorSpec) decode(out any) error {
	if s.Arg == nil {
		return fmt.Errorf("%w: validator %q needs an argument", ErrInvalidSchema, s.Name)
	}
	if err := s.Arg.Decode(out); err != nil {
		return fmt.Errorf("%w: validator %q: %w", ErrInvalidSchema, s.Name, err)
	}
	return nil
}

func (s ValidatorSpec) regex() (validator.Validator, error) {
	if s.Arg == nil {
		return nil, fmt.Errorf("%w: validator %q needs a pattern", ErrInvalidSchema, s.Name)
	}
	var arg regexArg
	if s.Arg.Kind == yaml.ScalarNode {
		arg.Pattern = s.Arg.Value
	} else if err := s.decode(&arg); err != nil {
		return nil, err
	}

	var flags validator.Flag
	for _, f := range arg.Flags {
		flag, ok := regexFlags[fold(f)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown regex flag %q", ErrInvalidSchema, f)
		}
		flags |= flag
	}
	v, err := validator.Regex(arg.Pattern, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return v, nil
}
