package storage

import (
	"errors"

	"github.com/dmitrymomot/fieldkit/pkg/field"
	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

// ErrNilRecord is returned when Encode is given a nil record.
var ErrNilRecord = errors.New("storage: nil record")

// Encode builds a Row from r. For every field, in order, the stored value or
// the default is validated and converted with ToStorage. All failing fields
// are reported together as validator.ValidationErrors.
func Encode[R any](r *R, fields ...*field.Field[R]) (Row, error) {
	if r == nil {
		return Row{}, ErrNilRecord
	}

	var (
		row  = Row{Columns: make([]Column, 0, len(fields))}
		errs validator.ValidationErrors
	)
	for _, f := range fields {
		name := f.Name()
		v := f.ValueOrDefault(r)
		if err := f.Validate(name, v); err != nil {
			errs.Append(name, err)
			continue
		}
		row.Columns = append(row.Columns, Column{
			Name:    name,
			Value:   f.ToStorage(v),
			Primary: f.Config().Primary,
		})
	}
	if !errs.IsEmpty() {
		return Row{}, errs
	}
	return row, nil
}
