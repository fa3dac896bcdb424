package cli

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/value"
)

// resolveFormat picks a format by name, falling back to the extension of
// path when name is empty.
func resolveFormat(name, path string) (format.Format, bool) {
	if name != "" {
		return format.ByName(name)
	}
	return format.ForPath(path)
}

// loadInput reads the record file at path. Failures are reported through
// formatter and returned as an ExitError.
func loadInput(formatter *OutputFormatter, path, formatName string) (value.Value, format.Format, error) {
	f, ok := resolveFormat(formatName, path)
	if !ok {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeUnknownFormat,
			unknownFormatMessage(formatName, path), map[string]any{"formats": format.Names()})
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("input not found: %s", path), nil)
	}

	formatter.VerboseLog("Reading %s as %s", path, f.Name())
	v, err := format.Load(f, path)
	if err != nil {
		code := ErrCodeParse
		if errors.Is(err, format.ErrIO) {
			code = ErrCodeGeneric
		}
		return nil, nil, formatter.Fail(ExitFailure, code,
			fmt.Sprintf("reading %s: %v", path, err), nil)
	}
	return v, f, nil
}

func unknownFormatMessage(name, path string) string {
	if name != "" {
		return fmt.Sprintf("unknown format %q", name)
	}
	return fmt.Sprintf("cannot infer format from %s; use a format flag", path)
}
