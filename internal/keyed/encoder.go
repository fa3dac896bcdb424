package keyed

import (
	"reflect"

	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/value"
)

// Encodable writes itself into an Encoder.
type Encodable interface {
	EncodeTo(e *Encoder)
}

// VersionedEncodable stamps a version after the fields are encoded.
type VersionedEncodable interface {
	EncodeVersion(e *Encoder)
}

// EncodeFinisher runs last and may add extra keys.
type EncodeFinisher interface {
	FinishEncoding(e *Encoder)
}

// Encoder collects values into a dictionary. Stored values must be of a
// kind value.FromAny accepts for the result to be written through a Format.
type Encoder struct {
	data map[string]any
}

// NewEncoder creates an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{data: map[string]any{}}
}

// Data returns the dictionary built so far.
func (e *Encoder) Data() map[string]any {
	return e.data
}

// Encode stores v at key. A nil v is absence and leaves the key unset.
func (e *Encoder) Encode(key string, v any) {
	if v == nil {
		return
	}
	e.data[key] = v
}

// EncodeModel stores m's dictionary at key. A nil m, including a typed nil
// pointer, is absence.
func (e *Encoder) EncodeModel(key string, m Encodable) {
	if isNil(m) {
		return
	}
	e.data[key] = Encode(m)
}

// EncodeModelSlice stores the dictionaries of items in order at key. A nil
// slice is absence. A nil element is stored as nil to keep positions.
func EncodeModelSlice[E Encodable](e *Encoder, key string, items []E) {
	if items == nil {
		return
	}
	out := make([]any, len(items))
	for i, item := range items {
		if !isNil(item) {
			out[i] = Encode(item)
		}
	}
	e.data[key] = out
}

// EncodeModelMap stores the dictionaries of items under their keys at key.
// A nil map is absence and nil elements are skipped.
func EncodeModelMap[E Encodable](e *Encoder, key string, items map[string]E) {
	if items == nil {
		return
	}
	out := make(map[string]any, len(items))
	for k, item := range items {
		if !isNil(item) {
			out[k] = Encode(item)
		}
	}
	e.data[key] = out
}

// isNil reports whether m is nil or holds a nil pointer, map, or slice.
func isNil(m Encodable) bool {
	if m == nil {
		return true
	}
	switch rv := reflect.ValueOf(m); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Encode runs the encode contract of m on a fresh Encoder: fields, then
// version, then the finish hook.
func Encode(m Encodable) map[string]any {
	e := NewEncoder()
	m.EncodeTo(e)
	if v, ok := m.(VersionedEncodable); ok {
		v.EncodeVersion(e)
	}
	if f, ok := m.(EncodeFinisher); ok {
		f.FinishEncoding(e)
	}
	return e.data
}

// EncodeFile encodes m and atomically writes it to path with f. It reports
// false when the dictionary holds values no format can carry or the write
// fails.
func EncodeFile(f format.Format, m Encodable, path string) bool {
	v, err := value.FromAny(Encode(m))
	if err != nil {
		format.Logger().Debug("keyed encode failed", "error", err)
		return false
	}
	return format.WriteFile(f, v, path)
}
