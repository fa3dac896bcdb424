package format

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/roach88/state/internal/value"
)

// jsonAPI decodes numbers as json.Number so integers keep full int64
// precision and floats keep their spelling.
var jsonAPI = jsoniter.Config{
	UseNumber:   true,
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// jsonFormat is the structured text format.
type jsonFormat struct {
	canonical bool
}

// JSON returns the structured text format. pretty indents by two spaces.
func JSON() Format {
	return &jsonFormat{}
}

// CanonicalJSON returns a JSON format whose output is RFC 8785 canonical
// text (sorted keys, NFC strings, no whitespace). pretty is ignored.
func CanonicalJSON() Format {
	return &jsonFormat{canonical: true}
}

func (j *jsonFormat) Name() string {
	if j.canonical {
		return "canonical-json"
	}
	return "json"
}

func (j *jsonFormat) Encode(v value.Value, pretty bool) ([]byte, error) {
	switch v.(type) {
	case value.Object, value.Array:
	default:
		return nil, markNew(ErrUnrepresentable, "%s: top-level value must be an array or object, got %s", j.Name(), value.KindOf(v))
	}
	if err := value.Validate(v); err != nil {
		return nil, mark(err, ErrUnrepresentable, j.Name())
	}

	var (
		data []byte
		err  error
	)
	switch {
	case j.canonical:
		data, err = value.MarshalCanonical(v)
	case pretty:
		data, err = value.AppendJSON(nil, v, "  ")
	default:
		data, err = value.AppendJSON(nil, v, "")
	}
	if err != nil {
		return nil, mark(err, ErrUnrepresentable, j.Name())
	}
	return data, nil
}

// Decode accepts any JSON value at the top level, not only containers.
func (j *jsonFormat) Decode(data []byte) (value.Value, error) {
	var raw any
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return nil, mark(err, ErrParse, j.Name())
	}
	v, err := value.FromAny(raw)
	if err != nil {
		return nil, mark(err, ErrParse, j.Name())
	}
	return v, nil
}
