package field_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldkit/pkg/field"
	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

func collect(l *field.List) []any {
	var out []any
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

func TestNewList(t *testing.T) {
	t.Parallel()

	t.Run("copies elements in order", func(t *testing.T) {
		src := []int{1, 2, 3}
		l, err := field.NewList(src, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, l.Len())
		assert.Equal(t, []any{1, 2, 3}, collect(l))

		src[0] = 100
		first, err := l.Get(0)
		require.NoError(t, err)
		assert.Equal(t, 1, first)
	})

	t.Run("nil gives empty list", func(t *testing.T) {
		l, err := field.NewList(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, l.Len())
	})

	t.Run("accepts arrays, iterators and lists", func(t *testing.T) {
		l, err := field.NewList([2]string{"a", "b"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, l.Values())

		seq := slices.Values([]any{"x", "y"})
		l2, err := field.NewList(seq, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{"x", "y"}, l2.Values())

		l3, err := field.NewList(l, nil)
		require.NoError(t, err)
		require.NoError(t, l3.Append("c"))
		assert.Equal(t, 2, l.Len(), "copy must not share storage")
	})

	t.Run("non-iterables fail immediately", func(t *testing.T) {
		for _, v := range []any{42, "abc", struct{}{}, map[string]int{"a": 1}} {
			_, err := field.NewList(v, nil)
			assert.ErrorIs(t, err, field.ErrMalformedConfiguration, "value %#v", v)
		}
	})

	t.Run("elements are validated on construction", func(t *testing.T) {
		f := field.MustNew[record]("n", field.AsList(), field.WithKind(field.IntegerKind))
		_, err := field.NewList([]any{1, "2"}, f)
		assert.ErrorIs(t, err, field.ErrValidationFailed)
	})
}

func TestList_Mutations(t *testing.T) {
	t.Parallel()

	t.Run("append and delete", func(t *testing.T) {
		l, err := field.NewList([]int{1, 2, 3}, nil)
		require.NoError(t, err)

		require.NoError(t, l.Append(4))
		assert.Equal(t, 4, l.Len())
		last, err := l.Get(-1)
		require.NoError(t, err)
		assert.Equal(t, 4, last)

		require.NoError(t, l.Delete(0))
		assert.Equal(t, []any{2, 3, 4}, l.Values())
	})

	t.Run("set replaces in place", func(t *testing.T) {
		l, err := field.NewList([]string{"a", "b", "c"}, nil)
		require.NoError(t, err)
		require.NoError(t, l.Set(1, "B"))
		require.NoError(t, l.Set(-1, "C"))
		assert.Equal(t, []any{"a", "B", "C"}, l.Values())
	})

	t.Run("insert shifts and clamps", func(t *testing.T) {
		l, err := field.NewList([]int{1, 3}, nil)
		require.NoError(t, err)

		require.NoError(t, l.Insert(1, 2))
		assert.Equal(t, []any{1, 2, 3}, l.Values())

		require.NoError(t, l.Insert(100, 4))
		require.NoError(t, l.Insert(-100, 0))
		assert.Equal(t, []any{0, 1, 2, 3, 4}, l.Values())

		require.NoError(t, l.Insert(-1, 35))
		assert.Equal(t, []any{0, 1, 2, 3, 35, 4}, l.Values())
	})

	t.Run("index errors", func(t *testing.T) {
		l, err := field.NewList([]int{1}, nil)
		require.NoError(t, err)

		_, err = l.Get(1)
		assert.ErrorIs(t, err, field.ErrIndexOutOfRange)
		assert.ErrorIs(t, l.Set(-2, 0), field.ErrIndexOutOfRange)
		assert.ErrorIs(t, l.Delete(5), field.ErrIndexOutOfRange)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("values is a copy", func(t *testing.T) {
		l, err := field.NewList([]int{1}, nil)
		require.NoError(t, err)
		vs := l.Values()
		vs[0] = 9
		v, _ := l.Get(0)
		assert.Equal(t, 1, v)
	})

	t.Run("string form", func(t *testing.T) {
		l, err := field.NewList([]int{1, 2}, nil)
		require.NoError(t, err)
		assert.Equal(t, "[1 2]", l.String())
	})

	t.Run("length validators see the list", func(t *testing.T) {
		l, err := field.NewList([]int{1, 2}, nil)
		require.NoError(t, err)
		assert.NoError(t, validator.MaxLength(2).Validate(l))
		assert.Error(t, validator.MinLength(3).Validate(l))
		assert.NoError(t, field.IsList.Validate(l))
		assert.Error(t, field.IsList.Validate([]int{1}))
	})
}

func TestList_ElementValidation(t *testing.T) {
	t.Parallel()

	f := field.MustNew[record]("scores",
		field.AsList(),
		field.WithKind(field.IntegerKind),
		field.WithValidators(validator.MinValue(0), validator.MaxValue(100)),
	)
	l, err := field.NewList([]int{10, 20}, f)
	require.NoError(t, err)

	t.Run("append", func(t *testing.T) {
		err := l.Append(101)
		assert.ErrorIs(t, err, field.ErrValidationFailed)
		assert.Contains(t, err.Error(), "less than or equal to 100")
	})

	t.Run("insert", func(t *testing.T) {
		assert.ErrorIs(t, l.Insert(0, "x"), field.ErrValidationFailed)
	})

	t.Run("set", func(t *testing.T) {
		assert.ErrorIs(t, l.Set(0, -1), field.ErrValidationFailed)
	})

	t.Run("rejected writes leave the list unchanged", func(t *testing.T) {
		assert.Equal(t, []any{10, 20}, l.Values())
	})

	t.Run("nil elements follow the required flag", func(t *testing.T) {
		required := field.MustNew[record]("r", field.AsList(), field.Required())
		rl, err := field.NewList(nil, required)
		require.NoError(t, err)
		assert.ErrorIs(t, rl.Append(nil), field.ErrFieldRequired)

		optional := field.MustNew[record]("o", field.AsList())
		ol, err := field.NewList(nil, optional)
		require.NoError(t, err)
		assert.NoError(t, ol.Append(nil))
	})
}
