// Package storage turns field values into storage-ready rows.
//
// Encode reads every field of a record (applying defaults), validates each
// value and converts it with the field's storage transform. Failures of
// independent fields are collected into validator.ValidationErrors rather
// than stopping at the first one.
//
// A Row is driver-neutral. It can be viewed as a plain map, as a MongoDB
// document (bson.D, primary column stored as _id) or as pgx named arguments
// together with a matching INSERT statement. The package performs no I/O.
//
//	row, err := storage.Encode(&rec, s.Fields()...)
//	if err != nil {
//	    return err
//	}
//	_, err = conn.Exec(ctx, row.InsertSQL("articles"), row.NamedArgs())
package storage
