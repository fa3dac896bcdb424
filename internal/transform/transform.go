// Package transform converts domain values that have no native value kind
// to and from a representable value.Value.
//
// A Transform is a pure, stateless pair. Forward never fails; Reverse reports
// false when the stored value cannot be turned back into a domain value, and
// a required field treats that as a decode failure of the whole record.
package transform

import (
	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/value"
)

// Transform converts between a domain value D and its stored form.
type Transform[D any] interface {
	Forward(d D) value.Value
	Reverse(v value.Value) (D, bool)
}

// Func adapts a pair of functions to a Transform.
type Func[D any] struct {
	To   func(D) value.Value
	From func(value.Value) (D, bool)
}

// Forward implements Transform.
func (f Func[D]) Forward(d D) value.Value {
	return f.To(d)
}

// Reverse implements Transform.
func (f Func[D]) Reverse(v value.Value) (D, bool) {
	if v == nil {
		var zero D
		return zero, false
	}
	return f.From(v)
}

// Get reads the value at key and reverses it with t.
func Get[D any](s *store.Store, key string, t Transform[D]) (D, bool) {
	v, ok := s.Value(key)
	if !ok {
		var zero D
		return zero, false
	}
	return t.Reverse(v)
}

// Set forwards d with t and stores the result at key.
func Set[D any](s *store.Store, key string, d D, t Transform[D]) {
	s.Set(key, t.Forward(d))
}

// SetOptional is Set for optional fields: a nil d leaves the Store untouched.
func SetOptional[D any](s *store.Store, key string, d *D, t Transform[D]) {
	if d == nil {
		return
	}
	Set(s, key, *d, t)
}
