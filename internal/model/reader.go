package model

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/transform"
	"github.com/roach88/state/internal/value"
)

// Reader pulls typed fields out of a Store and remembers which required
// fields could not be read. Required getters return the zero value on
// failure; optional getters return nil for absent or wrong-shaped values.
type Reader struct {
	s       *store.Store
	missing []string
	failed  []string
	bad     []string
}

// NewReader creates a Reader over s.
func NewReader(s *store.Store) *Reader {
	return &Reader{s: s}
}

// Store returns the Store being read.
func (r *Reader) Store() *store.Store {
	return r.s
}

// OK reports whether every required field was read.
func (r *Reader) OK() bool {
	return len(r.missing) == 0 && len(r.failed) == 0
}

// Missing lists the required keys that were absent or malformed, in the
// order they were requested.
func (r *Reader) Missing() []string {
	return append([]string(nil), r.bad...)
}

// Err describes why the Reader is not OK, or returns nil.
func (r *Reader) Err() error {
	switch {
	case len(r.missing) > 0:
		return errors.Mark(errors.Newf("required fields missing: %v", r.missing), ErrDecode)
	case len(r.failed) > 0:
		return errors.Mark(errors.Newf("fields could not be transformed: %v", r.failed), ErrTransform)
	}
	return nil
}

func (r *Reader) miss(key string) {
	r.missing = append(r.missing, key)
	r.bad = append(r.bad, key)
}

func required[T any](r *Reader, key string, v T, ok bool) T {
	if !ok {
		r.miss(key)
		var zero T
		return zero
	}
	return v
}

func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// String reads required text.
func (r *Reader) String(key string) string {
	v, ok := r.s.String(key)
	return required(r, key, v, ok)
}

// Int reads a required integer.
func (r *Reader) Int(key string) int {
	v, ok := r.s.Int(key)
	return int(required(r, key, v, ok))
}

// Int64 reads a required 64-bit integer.
func (r *Reader) Int64(key string) int64 {
	v, ok := r.s.Int(key)
	return required(r, key, v, ok)
}

// Float reads a required number.
func (r *Reader) Float(key string) float64 {
	v, ok := r.s.Float(key)
	return required(r, key, v, ok)
}

// Bool reads a required boolean.
func (r *Reader) Bool(key string) bool {
	v, ok := r.s.Bool(key)
	return required(r, key, v, ok)
}

// Bytes reads a required byte sequence.
func (r *Reader) Bytes(key string) []byte {
	v, ok := r.s.Bytes(key)
	return required(r, key, v, ok)
}

// Strings reads a required sequence of text.
func (r *Reader) Strings(key string) []string {
	v, ok := r.s.Strings(key)
	return required(r, key, v, ok)
}

// Value reads a required raw value of any kind.
func (r *Reader) Value(key string) value.Value {
	v, ok := r.s.Value(key)
	return required(r, key, v, ok)
}

// OptString reads optional text.
func (r *Reader) OptString(key string) *string {
	return optional(r.s.String(key))
}

// OptInt reads an optional integer.
func (r *Reader) OptInt(key string) *int {
	v, ok := r.s.Int(key)
	return optional(int(v), ok)
}

// OptInt64 reads an optional 64-bit integer.
func (r *Reader) OptInt64(key string) *int64 {
	return optional(r.s.Int(key))
}

// OptFloat reads an optional number.
func (r *Reader) OptFloat(key string) *float64 {
	return optional(r.s.Float(key))
}

// OptBool reads an optional boolean.
func (r *Reader) OptBool(key string) *bool {
	return optional(r.s.Bool(key))
}

// OptBytes reads an optional byte sequence.
func (r *Reader) OptBytes(key string) []byte {
	v, _ := r.s.Bytes(key)
	return v
}

// OptStrings reads an optional sequence of text.
func (r *Reader) OptStrings(key string) []string {
	v, _ := r.s.Strings(key)
	return v
}

// OptValue reads an optional raw value. Absence is nil; a present Null is
// value.Null.
func (r *Reader) OptValue(key string) value.Value {
	v, _ := r.s.Value(key)
	return v
}

// Field reads a required nested record.
func Field[T any, PT PtrModel[T]](r *Reader, key string) T {
	v, ok := Get[T, PT](r.s, key)
	return required(r, key, v, ok)
}

// OptField reads an optional nested record. A present value that does not
// decode is treated as absent.
func OptField[T any, PT PtrModel[T]](r *Reader, key string) *T {
	return optional(Get[T, PT](r.s, key))
}

// Slice reads a required sequence of records, all or nothing.
func Slice[T any, PT PtrModel[T]](r *Reader, key string) []T {
	v, ok := GetSlice[T, PT](r.s, key)
	return required(r, key, v, ok)
}

// OptSlice reads an optional sequence of records.
func OptSlice[T any, PT PtrModel[T]](r *Reader, key string) []T {
	v, _ := GetSlice[T, PT](r.s, key)
	return v
}

// Map reads a required mapping of records, all or nothing.
func Map[T any, PT PtrModel[T]](r *Reader, key string) map[string]T {
	v, ok := GetMap[T, PT](r.s, key)
	return required(r, key, v, ok)
}

// OptMap reads an optional mapping of records.
func OptMap[T any, PT PtrModel[T]](r *Reader, key string) map[string]T {
	v, _ := GetMap[T, PT](r.s, key)
	return v
}

// Transformed reads a required field through t. A present value t cannot
// reverse fails the record with ErrTransform.
func Transformed[D any](r *Reader, key string, t transform.Transform[D]) D {
	if !r.s.Has(key) {
		r.miss(key)
		var zero D
		return zero
	}
	d, ok := transform.Get(r.s, key, t)
	if !ok {
		r.failed = append(r.failed, key)
		r.bad = append(r.bad, key)
	}
	return d
}

// OptTransformed reads an optional field through t.
func OptTransformed[D any](r *Reader, key string, t transform.Transform[D]) *D {
	return optional(transform.Get(r.s, key, t))
}
