package format

import (
	"os"

	"github.com/google/renameio/v2"

	"github.com/roach88/state/internal/value"
)

// filePerm is the permission used for files created by Save.
const filePerm = 0o644

// Save serializes v with pretty layout and atomically replaces the file at
// path. Either the full content lands at path or the previous file (if any)
// is left untouched.
func Save(f Format, v value.Value, path string) error {
	return save(f, v, path, true)
}

// SaveCompact is Save without pretty layout.
func SaveCompact(f Format, v value.Value, path string) error {
	return save(f, v, path, false)
}

func save(f Format, v value.Value, path string, pretty bool) error {
	data, err := f.Encode(v, pretty)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, filePerm); err != nil {
		return mark(err, ErrIO, "write %s", path)
	}
	return nil
}

// Load reads the file at path and parses it with f.
func Load(f Format, path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mark(err, ErrIO, "read %s", path)
	}
	return f.Decode(data)
}

// WriteFile is Save reporting success as a bool.
func WriteFile(f Format, v value.Value, path string) bool {
	if err := Save(f, v, path); err != nil {
		logFailure(f, "write-file", err)
		return false
	}
	return true
}

// ReadFile is Load reporting absence on failure.
func ReadFile(f Format, path string) (value.Value, bool) {
	v, err := Load(f, path)
	if err != nil {
		logFailure(f, "read-file", err)
		return nil, false
	}
	return v, true
}
