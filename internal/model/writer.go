package model

import (
	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/transform"
	"github.com/roach88/state/internal/value"
)

// Writer stores typed fields into a Store. Optional setters skip nil inputs
// so absent fields stay absent.
type Writer struct {
	s *store.Store
}

// NewWriter creates a Writer over s.
func NewWriter(s *store.Store) *Writer {
	return &Writer{s: s}
}

// Store returns the Store being written.
func (w *Writer) Store() *store.Store {
	return w.s
}

// String writes text.
func (w *Writer) String(key, v string) { w.s.SetString(key, v) }

// Int writes an integer.
func (w *Writer) Int(key string, v int) { w.s.SetInt(key, int64(v)) }

// Int64 writes a 64-bit integer.
func (w *Writer) Int64(key string, v int64) { w.s.SetInt(key, v) }

// Float writes a number.
func (w *Writer) Float(key string, v float64) { w.s.SetFloat(key, v) }

// Bool writes a boolean.
func (w *Writer) Bool(key string, v bool) { w.s.SetBool(key, v) }

// Bytes writes a byte sequence. A nil slice is absence.
func (w *Writer) Bytes(key string, v []byte) { w.s.SetBytes(key, v) }

// Strings writes a sequence of text. A nil slice is absence.
func (w *Writer) Strings(key string, v []string) { w.s.SetStrings(key, v) }

// Value writes a raw value. A nil v is absence.
func (w *Writer) Value(key string, v value.Value) { w.s.Set(key, v) }

// OptString writes *v when v is not nil. The other Opt setters follow the
// same rule.
func (w *Writer) OptString(key string, v *string) {
	if v != nil {
		w.s.SetString(key, *v)
	}
}

func (w *Writer) OptInt(key string, v *int) {
	if v != nil {
		w.s.SetInt(key, int64(*v))
	}
}

func (w *Writer) OptInt64(key string, v *int64) {
	if v != nil {
		w.s.SetInt(key, *v)
	}
}

func (w *Writer) OptFloat(key string, v *float64) {
	if v != nil {
		w.s.SetFloat(key, *v)
	}
}

func (w *Writer) OptBool(key string, v *bool) {
	if v != nil {
		w.s.SetBool(key, *v)
	}
}

// PutField writes a nested record. A nil m is absence.
func PutField[T any, PT PtrModel[T]](w *Writer, key string, m PT) {
	Set[T, PT](w.s, key, m)
}

// PutSlice writes a sequence of records in order. A nil slice is absence.
func PutSlice[T any, PT PtrModel[T]](w *Writer, key string, items []T) {
	SetSlice[T, PT](w.s, key, items)
}

// PutMap writes a mapping of records. A nil map is absence.
func PutMap[T any, PT PtrModel[T]](w *Writer, key string, items map[string]T) {
	SetMap[T, PT](w.s, key, items)
}

// PutTransformed writes d through t.
func PutTransformed[D any](w *Writer, key string, d D, t transform.Transform[D]) {
	transform.Set(w.s, key, d, t)
}

// PutOptTransformed writes *d through t when d is not nil.
func PutOptTransformed[D any](w *Writer, key string, d *D, t transform.Transform[D]) {
	transform.SetOptional(w.s, key, d, t)
}
