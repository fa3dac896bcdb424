package format

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/roach88/state/internal/value"
)

// Format converts a value graph to and from bytes.
// Implementations are immutable and safe for concurrent use.
type Format interface {
	// Name identifies the format ("json", "plist", ...).
	Name() string

	// Encode validates that v is representable and serializes it.
	// pretty requests human oriented layout where the format has one.
	Encode(v value.Value, pretty bool) ([]byte, error)

	// Decode parses data into a value graph.
	Decode(data []byte) (value.Value, error)
}

// TextParser is implemented by formats with a native text parser that works
// on strings independently of the byte decoder.
type TextParser interface {
	ParseString(s string) (value.Value, error)
}

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLogger sets the logger that receives swallowed failures. A nil logger
// restores the default, which discards everything.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Store(l)
}

// Logger returns the logger set with SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}

func logFailure(f Format, op string, err error) {
	logger.Load().Debug("format operation failed",
		"format", f.Name(),
		"op", op,
		"error", err,
	)
}

// Encode validates and serializes v with f.
func Encode(f Format, v value.Value, pretty bool) ([]byte, error) {
	return f.Encode(v, pretty)
}

// Decode parses data with f.
func Decode(f Format, data []byte) (value.Value, error) {
	return f.Decode(data)
}

// DecodeString parses text with f, preferring the format's own text parser.
func DecodeString(f Format, s string) (value.Value, error) {
	if tp, ok := f.(TextParser); ok {
		return tp.ParseString(s)
	}
	return f.Decode([]byte(s))
}

// MakeBytes serializes v, reporting false when v is not representable.
func MakeBytes(f Format, v value.Value, pretty bool) ([]byte, bool) {
	data, err := f.Encode(v, pretty)
	if err != nil {
		logFailure(f, "make-bytes", err)
		return nil, false
	}
	return data, true
}

// MakeString serializes v as pretty text. It reports false when v is not
// representable or the encoding is not valid UTF-8 text, as with Binary.
func MakeString(f Format, v value.Value) (string, bool) {
	data, ok := MakeBytes(f, v, true)
	if !ok {
		return "", false
	}
	if !utf8.Valid(data) {
		logFailure(f, "make-string", markNew(ErrUnrepresentable, "%s output is not valid UTF-8 text", f.Name()))
		return "", false
	}
	return string(data), true
}

// Read parses data, reporting false on any parse failure.
func Read(f Format, data []byte) (value.Value, bool) {
	v, err := f.Decode(data)
	if err != nil {
		logFailure(f, "read", err)
		return nil, false
	}
	return v, true
}

// ReadString parses text, reporting false on any parse failure.
func ReadString(f Format, s string) (value.Value, bool) {
	v, err := DecodeString(f, s)
	if err != nil {
		logFailure(f, "read-string", err)
		return nil, false
	}
	return v, true
}

var byName = map[string]func() Format{
	"binary":         Binary,
	"binary-zstd":    CompressedBinary,
	"json":           JSON,
	"canonical-json": CanonicalJSON,
	"plist":          Plist,
	"yaml":           YAML,
}

// Names lists the registered format names.
func Names() []string {
	return []string{"binary", "binary-zstd", "json", "canonical-json", "plist", "yaml"}
}

// ByName returns the format registered under name.
func ByName(name string) (Format, bool) {
	ctor, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// ForPath picks a format from the file extension of path.
func ForPath(path string) (Format, bool) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".cbor.zst") {
		return CompressedBinary(), true
	}
	switch filepath.Ext(lower) {
	case ".json":
		return JSON(), true
	case ".plist":
		return Plist(), true
	case ".yaml", ".yml":
		return YAML(), true
	case ".cbor", ".bin":
		return Binary(), true
	case ".zst":
		return CompressedBinary(), true
	}
	return nil, false
}
