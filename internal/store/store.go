package store

import (
	"math"

	"github.com/samber/lo"

	"github.com/roach88/state/internal/value"
)

// Store is a keyed container of values. The zero value is not usable; create
// Stores with New, Wrap or FromValue.
type Store struct {
	data value.Object
}

// New creates an empty Store for writing.
func New() *Store {
	return &Store{data: value.Object{}}
}

// Wrap creates a Store holding a deep copy of obj.
func Wrap(obj value.Object) *Store {
	return &Store{data: obj.Clone()}
}

// FromValue wraps v when it is Object-shaped. Any other kind reports false.
func FromValue(v value.Value) (*Store, bool) {
	obj, ok := v.(value.Object)
	if !ok {
		return nil, false
	}
	return Wrap(obj), true
}

// Data returns a deep copy of the Store's graph.
func (s *Store) Data() value.Object {
	return s.data.Clone()
}

// Clone returns an independent copy of s.
func (s *Store) Clone() *Store {
	return Wrap(s.data)
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return len(s.data)
}

// Keys returns the keys in RFC 8785 order.
func (s *Store) Keys() []string {
	return s.data.SortedKeys()
}

// Has reports whether key is present, including when it holds Null.
func (s *Store) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// IsNull reports whether key is present and holds Null.
func (s *Store) IsNull(key string) bool {
	_, ok := s.data[key].(value.Null)
	return ok
}

// Equal reports whether s and other hold structurally equal graphs.
func (s *Store) Equal(other *Store) bool {
	return value.Equal(s.data, other.data)
}

// Value returns a copy of the raw value at key.
func (s *Store) Value(key string) (value.Value, bool) {
	v, ok := s.data[key]
	if !ok {
		return nil, false
	}
	return value.Clone(v), true
}

// String returns the text at key.
func (s *Store) String(key string) (string, bool) {
	v, ok := s.data[key].(value.String)
	return string(v), ok
}

// Int returns the integer at key. A Float holding an integral number in
// int64 range is accepted too.
func (s *Store) Int(key string) (int64, bool) {
	return asInt(s.data[key])
}

// Float returns the number at key. Ints are widened.
func (s *Store) Float(key string) (float64, bool) {
	return asFloat(s.data[key])
}

// Bool returns the boolean at key.
func (s *Store) Bool(key string) (bool, bool) {
	v, ok := s.data[key].(value.Bool)
	return bool(v), ok
}

// Bytes returns a copy of the byte sequence at key.
func (s *Store) Bytes(key string) ([]byte, bool) {
	v, ok := s.data[key].(value.Bytes)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// Array returns a copy of the sequence at key.
func (s *Store) Array(key string) (value.Array, bool) {
	v, ok := s.data[key].(value.Array)
	if !ok {
		return nil, false
	}
	return value.Clone(v).(value.Array), true
}

// Object returns a copy of the mapping at key.
func (s *Store) Object(key string) (value.Object, bool) {
	v, ok := s.data[key].(value.Object)
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Strings returns the sequence of text at key. Any non-text element fails
// the whole read.
func (s *Store) Strings(key string) ([]string, bool) {
	return collect(s.data[key], func(v value.Value) (string, bool) {
		str, ok := v.(value.String)
		return string(str), ok
	})
}

// Ints returns the sequence of integers at key, all or nothing.
func (s *Store) Ints(key string) ([]int64, bool) {
	return collect(s.data[key], asInt)
}

// Floats returns the sequence of numbers at key, all or nothing.
func (s *Store) Floats(key string) ([]float64, bool) {
	return collect(s.data[key], asFloat)
}

// Store returns the nested record at key.
func (s *Store) Store(key string) (*Store, bool) {
	return FromValue(s.data[key])
}

// Stores returns the sequence of records at key. A single element that is
// not Object-shaped fails the whole read.
func (s *Store) Stores(key string) ([]*Store, bool) {
	return collect(s.data[key], FromValue)
}

// StoreMap returns the mapping of records at key, all or nothing.
func (s *Store) StoreMap(key string) (map[string]*Store, bool) {
	obj, ok := s.data[key].(value.Object)
	if !ok {
		return nil, false
	}
	out := make(map[string]*Store, len(obj))
	for k, elem := range obj {
		child, ok := FromValue(elem)
		if !ok {
			return nil, false
		}
		out[k] = child
	}
	return out, true
}

// Set stores a copy of v at key, replacing any previous value. A nil v is
// absence and leaves the Store untouched.
func (s *Store) Set(key string, v value.Value) {
	if v == nil {
		return
	}
	s.data[key] = value.Clone(v)
}

// SetNull stores a present Null at key.
func (s *Store) SetNull(key string) {
	s.data[key] = value.Null{}
}

// SetString stores text at key.
func (s *Store) SetString(key, v string) {
	s.data[key] = value.String(v)
}

// SetInt stores an integer at key.
func (s *Store) SetInt(key string, v int64) {
	s.data[key] = value.Int(v)
}

// SetFloat stores a float at key.
func (s *Store) SetFloat(key string, v float64) {
	s.data[key] = value.Float(v)
}

// SetBool stores a boolean at key.
func (s *Store) SetBool(key string, v bool) {
	s.data[key] = value.Bool(v)
}

// SetBytes stores a copy of v at key. A nil slice is absence.
func (s *Store) SetBytes(key string, v []byte) {
	if v == nil {
		return
	}
	s.data[key] = value.Bytes(append([]byte(nil), v...))
}

// SetStrings stores a sequence of text at key. A nil slice is absence.
func (s *Store) SetStrings(key string, v []string) {
	if v == nil {
		return
	}
	s.data[key] = value.Array(lo.Map(v, func(str string, _ int) value.Value {
		return value.String(str)
	}))
}

// SetStore stores a copy of child's graph at key. A nil child is absence.
func (s *Store) SetStore(key string, child *Store) {
	if child == nil {
		return
	}
	s.data[key] = child.Data()
}

// SetStores stores the records in order at key. A nil slice is absence.
func (s *Store) SetStores(key string, children []*Store) {
	if children == nil {
		return
	}
	s.data[key] = value.Array(lo.Map(children, func(child *Store, _ int) value.Value {
		return child.Data()
	}))
}

// SetStoreMap stores the records under their keys at key. A nil map is
// absence.
func (s *Store) SetStoreMap(key string, children map[string]*Store) {
	if children == nil {
		return
	}
	s.data[key] = value.Object(lo.MapValues(children, func(child *Store, _ string) value.Value {
		return child.Data()
	}))
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) {
	delete(s.data, key)
}

// Rename moves the value at from to to, overwriting to. It reports false and
// changes nothing when from is missing.
func (s *Store) Rename(from, to string) bool {
	v, ok := s.data[from]
	if !ok {
		return false
	}
	delete(s.data, from)
	s.data[to] = v
	return true
}

func asInt(v value.Value) (int64, bool) {
	switch n := v.(type) {
	case value.Int:
		return int64(n), true
	case value.Float:
		f := float64(n)
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func asFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Float:
		return float64(n), true
	case value.Int:
		return float64(n), true
	}
	return 0, false
}

// collect converts every element of the Array v with conv. It fails when v
// is not an Array or any element fails to convert.
func collect[T any](v value.Value, conv func(value.Value) (T, bool)) ([]T, bool) {
	arr, ok := v.(value.Array)
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(arr))
	for _, elem := range arr {
		t, ok := conv(elem)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}
