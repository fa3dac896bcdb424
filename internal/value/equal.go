package value

import (
	"bytes"
	"fmt"
	"math"
)

// Equal reports whether a and b are structurally equal.
// Array order is significant; Object and Dict entries are compared as sets.
// Floats compare by value, so NaN is never equal to anything.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, elem := range av {
			other, found := bv[k]
			if !found || !Equal(elem, other) {
				return false
			}
		}
		return true
	case Dict:
		bv, ok := b.(Dict)
		if !ok || len(av) != len(bv) {
			return false
		}
		for _, p := range av {
			other, found := bv.Get(p.Key)
			if !found || !Equal(p.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of v. Containers never share backing storage
// with the original.
func Clone(v Value) Value {
	switch val := v.(type) {
	case Bytes:
		if val == nil {
			return Bytes(nil)
		}
		return Bytes(bytes.Clone(val))
	case Array:
		out := make(Array, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	case Object:
		return val.Clone()
	case Dict:
		out := make(Dict, len(val))
		for i, p := range val {
			out[i] = Pair{Key: Clone(p.Key), Value: Clone(p.Value)}
		}
		return out
	default:
		return v
	}
}

// Clone returns a deep copy of obj. A nil Object clones to an empty one.
func (obj Object) Clone() Object {
	out := make(Object, len(obj))
	for k, elem := range obj {
		out[k] = Clone(elem)
	}
	return out
}

// Validate checks that v is a well-formed tree: no nil members, Dict keys
// scalar and unique with at least one that is not String, and the nesting
// depth bounded by MaxDepth.
func Validate(v Value) error {
	return validate(v, 0)
}

// MaxDepth bounds the nesting of containers accepted by Validate and the
// format decoders.
const MaxDepth = 512

func validate(v Value, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("nesting deeper than %d", MaxDepth)
	}
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("nil value")
	case Array:
		for i, elem := range val {
			if err := validate(elem, depth+1); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
	case Object:
		for _, k := range val.SortedKeys() {
			if err := validate(val[k], depth+1); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
	case Dict:
		if !hasNonTextKey(val) {
			return fmt.Errorf("dict without a non-text key must be an Object")
		}
		for i, p := range val {
			if !IsScalar(p.Key) {
				return fmt.Errorf("dict[%d]: key of kind %s is not scalar", i, KindOf(p.Key))
			}
			if f, ok := p.Key.(Float); ok && math.IsNaN(float64(f)) {
				return fmt.Errorf("dict[%d]: NaN key", i)
			}
			for j := 0; j < i; j++ {
				if Equal(val[j].Key, p.Key) {
					return fmt.Errorf("dict[%d]: duplicate key %v", i, ToAny(p.Key))
				}
			}
			if err := validate(p.Value, depth+1); err != nil {
				return fmt.Errorf("dict[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// hasNonTextKey reports whether d has a key that is not String. Mappings
// keyed only by text, including empty ones, are Objects.
func hasNonTextKey(d Dict) bool {
	for _, p := range d {
		if _, ok := p.Key.(String); !ok {
			return true
		}
	}
	return false
}
