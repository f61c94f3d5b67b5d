// Package field provides Field, a typed and validated attribute shared by all
// records of one Go type, and List, the ordered container list fields store.
//
// A Field[R] holds configuration (default, required, primary, list, kind,
// validators) and a per-instance table of values. R must embed Record, which
// carries the identity the table is keyed on. The table keeps only weak
// references to that identity: once a record becomes unreachable its entry is
// removed by a runtime cleanup, so fields never extend the lifetime of the
// records they describe. Records may live anywhere, globals included.
//
// # Usage
//
//	type User struct {
//	    field.Record
//	    ID int64
//	}
//
//	var email = field.MustNew[User]("email",
//	    field.Required(),
//	    field.WithKind(field.StringKind),
//	    field.WithValidators(validator.MinLength(3)),
//	)
//
//	u := &User{}
//	_ = email.Set(u, "a@example.com")
//	if err := email.Validate(email.Name(), email.Get(u)); err != nil {
//	    // errors.Is(err, field.ErrFieldRequired) or field.ErrValidationFailed
//	}
//
// # Reads and defaults
//
// Get returns exactly what was stored, or nil. The configured default is
// never substituted, which keeps "nothing stored" distinguishable from "the
// default was stored". Lookup reports presence explicitly and ValueOrDefault
// applies the default when the caller asks for it.
//
// # Validation on write
//
// Set does not validate scalar values unless the field is built
// WithValidateOnWrite(true); callers are expected to call Validate before
// persisting. List elements are always checked: every List mutation passes
// the candidate element to the owning field first.
package field
