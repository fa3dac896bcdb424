// Package keyed is the lightweight read/write path over raw dictionaries.
//
// It overlaps with the model package but skips the Store wrapper: a
// Decodable reads plain map[string]any data through a Decoder and an
// Encodable writes into an Encoder. Leaf value types such as enumerations
// and small structs use it when collection helpers are not needed.
package keyed

import (
	"math"

	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/value"
)

// Decodable is implemented by the pointer type of anything that can fill
// itself from a Decoder.
type Decodable interface {
	DecodeFrom(d *Decoder) bool
}

// VersionedDecodable rewrites older data before DecodeFrom runs. The hook
// receives a Decoder over a private copy.
type VersionedDecodable interface {
	MigrateDecoder(d *Decoder) *Decoder
}

// DecodeFinisher runs after a successful DecodeFrom.
type DecodeFinisher interface {
	FinishDecoding(d *Decoder)
}

// PtrDecodable constrains PT to *T implementing Decodable.
type PtrDecodable[T any] interface {
	*T
	Decodable
}

// Decoder reads typed values out of a dictionary.
type Decoder struct {
	data map[string]any
}

// NewDecoder creates a Decoder over data. A nil map decodes as empty.
func NewDecoder(data map[string]any) *Decoder {
	if data == nil {
		data = map[string]any{}
	}
	return &Decoder{data: data}
}

// Data returns the dictionary being decoded.
func (d *Decoder) Data() map[string]any {
	return d.data
}

// Has reports whether key is present.
func (d *Decoder) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

// Decode returns the value at key as V. Numbers convert between Go numeric
// types when the value fits, and []any of strings reads as []string.
func Decode[V any](d *Decoder, key string) (V, bool) {
	var zero V
	raw, ok := d.data[key]
	if !ok || raw == nil {
		return zero, false
	}
	if v, ok := raw.(V); ok {
		return v, true
	}
	return coerce[V](raw)
}

// DecodeModel decodes the nested dictionary at key.
func DecodeModel[T any, PT PtrDecodable[T]](d *Decoder, key string) (T, bool) {
	m, ok := d.data[key].(map[string]any)
	if !ok {
		var zero T
		return zero, false
	}
	return FromMap[T, PT](m)
}

// DecodeModelSlice decodes the sequence of dictionaries at key. One element
// that fails fails the whole sequence.
func DecodeModelSlice[T any, PT PtrDecodable[T]](d *Decoder, key string) ([]T, bool) {
	var elems []map[string]any
	switch raw := d.data[key].(type) {
	case []map[string]any:
		elems = raw
	case []any:
		elems = make([]map[string]any, 0, len(raw))
		for _, e := range raw {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, false
			}
			elems = append(elems, m)
		}
	default:
		return nil, false
	}

	out := make([]T, 0, len(elems))
	for _, m := range elems {
		item, ok := FromMap[T, PT](m)
		if !ok {
			return nil, false
		}
		out = append(out, item)
	}
	return out, true
}

// DecodeModelMap decodes the dictionary of dictionaries at key, all or
// nothing.
func DecodeModelMap[T any, PT PtrDecodable[T]](d *Decoder, key string) (map[string]T, bool) {
	raw, ok := d.data[key].(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]T, len(raw))
	for k, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, false
		}
		item, ok := FromMap[T, PT](m)
		if !ok {
			return nil, false
		}
		out[k] = item
	}
	return out, true
}

// FromMap decodes a T from data.
func FromMap[T any, PT PtrDecodable[T]](data map[string]any) (T, bool) {
	var zero T
	d := NewDecoder(data)
	if m, ok := any(PT(new(T))).(VersionedDecodable); ok {
		if migrated := m.MigrateDecoder(NewDecoder(copyMap(d.data))); migrated != nil {
			d = migrated
		}
	}

	var out T
	if !PT(&out).DecodeFrom(d) {
		return zero, false
	}
	if f, ok := any(PT(&out)).(DecodeFinisher); ok {
		f.FinishDecoding(d)
	}
	return out, true
}

// FromAny decodes a T from v when v is a dictionary.
func FromAny[T any, PT PtrDecodable[T]](v any) (T, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		var zero T
		return zero, false
	}
	return FromMap[T, PT](m)
}

// DecodeFile reads the file at path with f and decodes a T from it.
func DecodeFile[T any, PT PtrDecodable[T]](f format.Format, path string) (T, bool) {
	v, ok := format.ReadFile(f, path)
	if !ok {
		var zero T
		return zero, false
	}
	return FromAny[T, PT](value.ToAny(v))
}

// copyMap copies the top level of m. Migrations replace values rather than
// edit nested containers in place.
func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func coerce[V any](raw any) (V, bool) {
	var out V
	switch p := any(&out).(type) {
	case *int:
		n, ok := toInt64(raw)
		if !ok || n < math.MinInt || n > math.MaxInt {
			return out, false
		}
		*p = int(n)
	case *int32:
		n, ok := toInt64(raw)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return out, false
		}
		*p = int32(n)
	case *int64:
		n, ok := toInt64(raw)
		if !ok {
			return out, false
		}
		*p = n
	case *float64:
		f, ok := toFloat64(raw)
		if !ok {
			return out, false
		}
		*p = f
	case *float32:
		f, ok := toFloat64(raw)
		if !ok {
			return out, false
		}
		*p = float32(f)
	case *[]string:
		arr, ok := raw.([]any)
		if !ok {
			return out, false
		}
		strs := make([]string, 0, len(arr))
		for _, e := range arr {
			s, ok := e.(string)
			if !ok {
				return out, false
			}
			strs = append(strs, s)
		}
		*p = strs
	default:
		return out, false
	}
	return out, true
}

func toInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toFloat64(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
