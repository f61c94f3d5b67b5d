package field

import (
	"reflect"
	"sync/atomic"
)

// Record gives a struct the identity fields key their values on. Embed it in
// every record type used with Field:
//
//	type Article struct {
//	    field.Record
//	    // ...
//	}
//
// A Record must not be copied after a field stored a value for it; copies
// share the identity and therefore the values.
type Record struct {
	h atomic.Pointer[handle]
}

// handle is always heap-allocated by this package, so weak pointers and
// cleanups can be attached to it whether the record lives on the heap, in a
// global or in a larger allocation. It must stay larger than the tiny
// allocator's block size or its cleanup can be delayed indefinitely.
type handle struct {
	_ [4]uint64
}

// identity returns the record's handle, allocating it on first use.
func (r *Record) identity() *handle {
	if h := r.h.Load(); h != nil {
		return h
	}
	h := new(handle)
	if r.h.CompareAndSwap(nil, h) {
		return h
	}
	return r.h.Load()
}

// peek returns the handle without allocating one.
func (r *Record) peek() *handle {
	return r.h.Load()
}

type identified interface {
	identity() *handle
	peek() *handle
}

var identifiedType = reflect.TypeFor[identified]()

// checkRecordType reports why R cannot be used as a record type, or "".
func checkRecordType[R any]() string {
	t := reflect.TypeFor[R]()
	switch {
	case t.Kind() == reflect.Interface:
		return "record type " + t.String() + " is an interface"
	case t.Size() == 0:
		return "record type " + t.String() + " has zero size"
	case !reflect.PointerTo(t).Implements(identifiedType):
		return "record type " + t.String() + " does not embed field.Record"
	}
	return ""
}
