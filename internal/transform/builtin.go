package transform

import (
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/state/internal/value"
)

// URL stores a URL as its string form. Reverse rejects empty text and text
// that does not parse.
func URL() Transform[*url.URL] {
	return Func[*url.URL]{
		To: func(u *url.URL) value.Value {
			if u == nil {
				return value.Null{}
			}
			return value.String(u.String())
		},
		From: func(v value.Value) (*url.URL, bool) {
			s, ok := v.(value.String)
			if !ok || s == "" {
				return nil, false
			}
			u, err := url.Parse(string(s))
			if err != nil {
				return nil, false
			}
			return u, true
		},
	}
}

// UUID stores a UUID in its canonical hyphenated form.
func UUID() Transform[uuid.UUID] {
	return Func[uuid.UUID]{
		To: func(id uuid.UUID) value.Value {
			return value.String(id.String())
		},
		From: func(v value.Value) (uuid.UUID, bool) {
			s, ok := v.(value.String)
			if !ok {
				return uuid.Nil, false
			}
			id, err := uuid.Parse(string(s))
			if err != nil {
				return uuid.Nil, false
			}
			return id, true
		},
	}
}

// Time stores an instant as RFC 3339 text in UTC with nanoseconds.
func Time() Transform[time.Time] {
	return Func[time.Time]{
		To: func(t time.Time) value.Value {
			return value.String(t.UTC().Format(time.RFC3339Nano))
		},
		From: func(v value.Value) (time.Time, bool) {
			s, ok := v.(value.String)
			if !ok {
				return time.Time{}, false
			}
			t, err := time.Parse(time.RFC3339Nano, string(s))
			if err != nil {
				return time.Time{}, false
			}
			return t, true
		},
	}
}

// RGBA is a color with channels in [0, 1].
type RGBA struct {
	Red, Green, Blue, Alpha float64
}

// Color stores an RGBA color as {red, green, blue, alpha}. All four channels
// are required.
func Color() Transform[RGBA] {
	return Func[RGBA]{
		To: func(c RGBA) value.Value {
			return value.Object{
				"red":   value.Float(c.Red),
				"green": value.Float(c.Green),
				"blue":  value.Float(c.Blue),
				"alpha": value.Float(c.Alpha),
			}
		},
		From: func(v value.Value) (RGBA, bool) {
			obj, ok := v.(value.Object)
			if !ok {
				return RGBA{}, false
			}
			var c RGBA
			for _, ch := range []struct {
				key string
				dst *float64
			}{
				{"red", &c.Red},
				{"green", &c.Green},
				{"blue", &c.Blue},
				{"alpha", &c.Alpha},
			} {
				switch n := obj[ch.key].(type) {
				case value.Float:
					*ch.dst = float64(n)
				case value.Int:
					*ch.dst = float64(n)
				default:
					return RGBA{}, false
				}
			}
			return c, true
		},
	}
}

// Enum stores a string-backed enumeration by its raw text. Reverse rejects
// text outside allowed.
func Enum[E ~string](allowed ...E) Transform[E] {
	return Func[E]{
		To: func(e E) value.Value {
			return value.String(e)
		},
		From: func(v value.Value) (E, bool) {
			s, ok := v.(value.String)
			if !ok || !slices.Contains(allowed, E(s)) {
				return "", false
			}
			return E(s), true
		},
	}
}
