package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// FromAny converts a native Go value graph to a Value.
//
// Accepted inputs are the shapes produced by the usual decoders: nil, bool,
// every integer and float kind, string, []byte, json.Number, time.Time
// (converted to an RFC 3339 string), []any, []string, map[string]any and
// map[any]any. A map[any]any whose keys are all strings becomes an Object;
// any other key set becomes a Dict. Values that are already Values pass
// through unchanged.
func FromAny(v any) (Value, error) {
	return fromAny(v, 0)
}

func fromAny(v any, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("nesting deeper than %d", MaxDepth)
	}
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case []byte:
		return Bytes(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return fromUint(uint64(val))
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		return fromUint(val)
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return fromNumber(val)
	case time.Time:
		return String(val.UTC().Format(time.RFC3339Nano)), nil
	case []string:
		arr := make(Array, len(val))
		for i, s := range val {
			arr[i] = String(s)
		}
		return arr, nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			conv, err := fromAny(elem, depth+1)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = conv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			conv, err := fromAny(elem, depth+1)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = conv
		}
		return obj, nil
	case map[any]any:
		return fromAnyMap(val, depth)
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

func fromUint(n uint64) (Value, error) {
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d out of int64 range", n)
	}
	return Int(n), nil
}

// fromNumber classifies a decoded JSON number. Anything spelled with a
// fraction or exponent is a Float, everything else must fit an int64.
func fromNumber(n json.Number) (Value, error) {
	s := string(n)
	if strings.ContainsAny(s, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %w", s, err)
		}
		return Float(f), nil
	}
	i, err := n.Int64()
	if err != nil {
		return nil, fmt.Errorf("number out of int64 range: %s", s)
	}
	return Int(i), nil
}

func fromAnyMap(m map[any]any, depth int) (Value, error) {
	allText := true
	for k := range m {
		if _, ok := k.(string); !ok {
			allText = false
			break
		}
	}
	if allText {
		obj := make(Object, len(m))
		for k, elem := range m {
			conv, err := fromAny(elem, depth+1)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k.(string)] = conv
		}
		return obj, nil
	}

	dict := make(Dict, 0, len(m))
	for k, elem := range m {
		key, err := fromAny(k, depth+1)
		if err != nil {
			return nil, fmt.Errorf("dict key %v: %w", k, err)
		}
		if !IsScalar(key) {
			return nil, fmt.Errorf("dict key %v: kind %s is not scalar", k, KindOf(key))
		}
		conv, err := fromAny(elem, depth+1)
		if err != nil {
			return nil, fmt.Errorf("dict[%v]: %w", k, err)
		}
		dict = append(dict, Pair{Key: key, Value: conv})
	}
	return dict, nil
}

// ToAny converts v to the equivalent native Go graph: nil, bool, int64,
// float64, string, []byte, []any, map[string]any or map[any]any.
func ToAny(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Bytes:
		return []byte(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToAny(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToAny(elem)
		}
		return out
	case Dict:
		out := make(map[any]any, len(val))
		for _, p := range val {
			out[ToAny(p.Key)] = ToAny(p.Value)
		}
		return out
	default:
		return nil
	}
}
