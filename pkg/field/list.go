package field

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

// ElementValidator checks a candidate list element. *Field implements it.
type ElementValidator interface {
	ValidateElement(value any) error
}

// IsList accepts *List values.
var IsList = validator.Type[*List]()

// List is an ordered, mutable sequence whose elements are checked by its
// owner on every write. A List with a nil owner accepts anything.
type List struct {
	owner ElementValidator
	data  []any
}

// NewList copies the elements of value into a new List owned by owner.
// value may be nil, a slice, an array, an iter.Seq[any] or another List.
// Anything else, strings included, fails with ErrMalformedConfiguration.
func NewList(value any, owner ElementValidator) (*List, error) {
	l := &List{owner: owner}
	if value == nil {
		return l, nil
	}
	items, ok := iterate(value)
	if !ok {
		return nil, fmt.Errorf("%w: value to be assigned to list must be iterable; received <%#v>",
			ErrMalformedConfiguration, value)
	}
	l.data = make([]any, 0, len(items))
	for _, item := range items {
		if err := l.Append(item); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func iterate(value any) ([]any, bool) {
	switch v := value.(type) {
	case *List:
		if v == nil {
			return nil, true
		}
		return v.Values(), true
	case []any:
		return v, true
	case iter.Seq[any]:
		return slices.Collect(v), true
	case func(func(any) bool):
		return slices.Collect(iter.Seq[any](v)), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	}
	return nil, false
}

// Owner returns the element validator the list reports to.
func (l *List) Owner() ElementValidator { return l.owner }

func (l *List) Len() int { return len(l.data) }

// Get returns the element at i. Negative indexes count from the end.
func (l *List) Get(i int) (any, error) {
	idx, err := l.index(i)
	if err != nil {
		return nil, err
	}
	return l.data[idx], nil
}

// Set replaces the element at i.
func (l *List) Set(i int, v any) error {
	idx, err := l.index(i)
	if err != nil {
		return err
	}
	if err := l.check(v); err != nil {
		return err
	}
	l.data[idx] = v
	return nil
}

// Delete removes the element at i, shifting later elements left.
func (l *List) Delete(i int) error {
	idx, err := l.index(i)
	if err != nil {
		return err
	}
	l.data = slices.Delete(l.data, idx, idx+1)
	return nil
}

// Insert places v before index i. Like a native insert, indexes past either
// end are clamped and negative indexes count from the end.
func (l *List) Insert(i int, v any) error {
	if err := l.check(v); err != nil {
		return err
	}
	if i < 0 {
		i = max(i+len(l.data), 0)
	}
	i = min(i, len(l.data))
	l.data = slices.Insert(l.data, i, v)
	return nil
}

func (l *List) Append(v any) error {
	if err := l.check(v); err != nil {
		return err
	}
	l.data = append(l.data, v)
	return nil
}

// Values returns a copy of the elements.
func (l *List) Values() []any {
	return slices.Clone(l.data)
}

// All iterates over index/element pairs.
func (l *List) All() iter.Seq2[int, any] {
	return slices.All(l.data)
}

func (l *List) String() string {
	return fmt.Sprint(l.data)
}

func (l *List) index(i int) (int, error) {
	n := len(l.data)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
	}
	return i, nil
}

func (l *List) check(v any) error {
	if l.owner == nil {
		return nil
	}
	return l.owner.ValidateElement(v)
}
