package validator

import (
	"fmt"
)

// Validator checks a single value. Validate returns nil when the value passes
// and a *ValidationError describing the violation otherwise.
type Validator interface {
	Validate(value any) error
}

// Func adapts an ordinary function to the Validator interface.
type Func func(value any) error

func (f Func) Validate(value any) error {
	return f(value)
}

// Chain is an ordered, immutable sequence of validators evaluated fail-fast.
type Chain []Validator

// NewChain builds a chain preserving declaration order. Nil validators are
// rejected.
func NewChain(validators ...Validator) (Chain, error) {
	chain := make(Chain, 0, len(validators))
	for i, v := range validators {
		if v == nil {
			return nil, fmt.Errorf("%w: validator #%d is nil", ErrMalformedConfiguration, i)
		}
		chain = append(chain, v)
	}
	return chain, nil
}

// Normalize turns the free-form validation spec accepted by field options
// into a Chain. The spec may be nil, a single Validator, a plain function,
// a slice of validators or functions, or a Chain.
func Normalize(spec any) (Chain, error) {
	switch s := spec.(type) {
	case nil:
		return Chain{}, nil
	case Chain:
		return NewChain(s...)
	case []Validator:
		return NewChain(s...)
	case Validator:
		return NewChain(s)
	case func(any) error:
		if s == nil {
			return nil, fmt.Errorf("%w: validator function is nil", ErrMalformedConfiguration)
		}
		return Chain{Func(s)}, nil
	case []func(any) error:
		chain := make(Chain, 0, len(s))
		for i, fn := range s {
			if fn == nil {
				return nil, fmt.Errorf("%w: validator #%d is nil", ErrMalformedConfiguration, i)
			}
			chain = append(chain, Func(fn))
		}
		return chain, nil
	case []any:
		chain := make(Chain, 0, len(s))
		for i, item := range s {
			part, err := Normalize(item)
			if err != nil {
				return nil, fmt.Errorf("validator #%d: %w", i, err)
			}
			if len(part) == 0 {
				return nil, fmt.Errorf("%w: validator #%d is nil", ErrMalformedConfiguration, i)
			}
			chain = append(chain, part...)
		}
		return chain, nil
	default:
		return nil, fmt.Errorf("%w: unsupported validator spec of type %T", ErrMalformedConfiguration, spec)
	}
}

// Validate runs every validator in order and returns the first failure.
// Later validators are not evaluated once one has failed.
func (c Chain) Validate(value any) error {
	for _, v := range c {
		if err := v.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of validators in the chain.
func (c Chain) Len() int {
	return len(c)
}
