package value

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface representing the value kinds a store can hold.
// Only Null, Bool, Int, Float, String, Bytes, Array, Object and Dict
// implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// Kind identifies the dynamic type of a Value.
type Kind int

// Value kinds.
const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindArray
	KindObject
	KindDict
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindBytes:   "bytes",
	KindArray:   "array",
	KindObject:  "object",
	KindDict:    "dict",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Null represents a present null value.
// Using an explicit type ensures all Values satisfy the sealed interface.
type Null struct{}

func (Null) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) value() {}

// Float represents a floating-point value.
type Float float64

func (Float) value() {}

// String represents a text value.
type String string

func (String) value() {}

// Bytes represents an opaque byte sequence.
type Bytes []byte

func (Bytes) value() {}

// Array represents an ordered sequence of values.
type Array []Value

func (Array) value() {}

// Object represents a map of string keys to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// Pair is one entry of a Dict.
type Pair struct {
	Key   Value
	Value Value
}

// Dict represents a map whose keys are scalar values that are not all text.
// Entries keep insertion order; keys must be unique (see Validate).
type Dict []Pair

func (Dict) value() {}

// KindOf returns the kind of v. A nil interface reports KindInvalid.
func KindOf(v Value) Kind {
	switch v.(type) {
	case Null:
		return KindNull
	case Bool:
		return KindBool
	case Int:
		return KindInt
	case Float:
		return KindFloat
	case String:
		return KindString
	case Bytes:
		return KindBytes
	case Array:
		return KindArray
	case Object:
		return KindObject
	case Dict:
		return KindDict
	default:
		return KindInvalid
	}
}

// IsScalar reports whether v is a Bool, Int, Float or String.
// Only scalar values may be Dict keys.
func IsScalar(v Value) bool {
	switch v.(type) {
	case Bool, Int, Float, String:
		return true
	}
	return false
}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// ObjectPair represents a key-value pair for typed Object construction.
type ObjectPair struct {
	Key   string
	Value Value
}

// O is a shorthand for ObjectPair for ergonomic construction.
// Example: NewObject(O("name", String("John")), O("age", Int(10)))
func O(key string, v Value) ObjectPair {
	return ObjectPair{Key: key, Value: v}
}

// NewObject creates an Object from key-value pairs.
func NewObject(pairs ...ObjectPair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// Get returns the value stored under key in d.
func (d Dict) Get(key Value) (Value, bool) {
	for _, p := range d {
		if Equal(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 which produces a different order.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering
// as required by RFC 8785 (Canonical JSON).
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// If all compared units are equal, shorter string comes first
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
