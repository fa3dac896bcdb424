package format

import (
	"strings"

	"howett.net/plist"

	"github.com/roach88/state/internal/value"
)

// plistFormat is the XML property list document format.
type plistFormat struct{}

// Plist returns the property list document format. It writes XML plists and
// reads XML, binary and OpenStep plists.
func Plist() Format {
	return plistFormat{}
}

func (plistFormat) Name() string { return "plist" }

func (p plistFormat) Encode(v value.Value, pretty bool) ([]byte, error) {
	if err := value.Validate(v); err != nil {
		return nil, mark(err, ErrUnrepresentable, "plist")
	}
	if err := checkPlist(v); err != nil {
		return nil, mark(err, ErrUnrepresentable, "plist")
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = plist.MarshalIndent(value.ToAny(v), plist.XMLFormat, "\t")
	} else {
		data, err = plist.Marshal(value.ToAny(v), plist.XMLFormat)
	}
	if err != nil {
		return nil, mark(err, ErrUnrepresentable, "plist")
	}
	return data, nil
}

func (p plistFormat) Decode(data []byte) (value.Value, error) {
	var raw any
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, mark(err, ErrParse, "plist")
	}
	return fromPlist(raw)
}

// ParseString parses plist text read from a string. It accepts the same XML,
// binary and OpenStep grammars as Decode.
func (p plistFormat) ParseString(s string) (value.Value, error) {
	var raw any
	if err := plist.NewDecoder(strings.NewReader(s)).Decode(&raw); err != nil {
		return nil, mark(err, ErrParse, "plist")
	}
	return fromPlist(raw)
}

func fromPlist(raw any) (value.Value, error) {
	v, err := value.FromAny(raw)
	if err != nil {
		return nil, mark(err, ErrParse, "plist")
	}
	return v, nil
}

// checkPlist rejects the kinds a property list cannot carry: Null (plists
// have no null) and Dict (dictionary keys must be strings).
func checkPlist(v value.Value) error {
	switch val := v.(type) {
	case value.Null:
		return markNew(ErrUnrepresentable, "null has no plist representation")
	case value.Dict:
		return markNew(ErrUnrepresentable, "plist dictionary keys must be strings")
	case value.Array:
		for i, elem := range val {
			if err := checkPlist(elem); err != nil {
				return mark(err, ErrUnrepresentable, "array[%d]", i)
			}
		}
	case value.Object:
		for _, k := range val.SortedKeys() {
			if err := checkPlist(val[k]); err != nil {
				return mark(err, ErrUnrepresentable, "object[%q]", k)
			}
		}
	}
	return nil
}
