package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarshalJSON implements json.Marshaler for Object with sorted keys (RFC 8785 ordering).
// NOTE: This is NOT canonical marshaling. Use MarshalCanonical for hashing.
func (obj Object) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, obj, "")
}

// MarshalJSON implements json.Marshaler for Array.
func (arr Array) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, arr, "")
}

// AppendJSON appends the JSON text of v to dst.
//
// When indent is non-empty each nested element starts on its own line,
// prefixed by one indent per level. Object keys are written in RFC 8785
// order so output is stable. Bytes, Dict and non-finite floats have no JSON
// representation and produce an error.
func AppendJSON(dst []byte, v Value, indent string) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := writeJSON(buf, v, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value, indent string, depth int) error {
	switch val := v.(type) {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		s, err := FormatFloat(float64(val))
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case String:
		return writeJSONString(buf, string(val))
	case Array:
		if len(val) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := writeJSON(buf, elem, indent, depth+1); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case Object:
		if len(val) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := writeJSONString(buf, k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := writeJSON(buf, val[k], indent, depth+1); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	case Bytes:
		return fmt.Errorf("bytes have no JSON representation")
	case Dict:
		return fmt.Errorf("map keys must be strings in JSON")
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
	return nil
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(indent)
	}
}

// writeJSONString quotes s without HTML escaping, so "<" and "&" stay
// readable in documents meant for people.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

// FormatFloat renders f as a JSON number that always reads back as a float:
// the shortest round-trip digits, with ".0" appended when they would
// otherwise look like an integer.
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("non-finite float %v has no JSON representation", f)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}
