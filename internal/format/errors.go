package format

import (
	"github.com/cockroachdb/errors"
)

// Failure kinds. Errors returned by this package are marked with exactly one
// of them; test with errors.Is.
var (
	// ErrUnrepresentable marks a graph the target format cannot carry.
	ErrUnrepresentable = errors.New("value not representable in format")
	// ErrParse marks input that is not valid for the format.
	ErrParse = errors.New("parse failed")
	// ErrIO marks a storage read or write failure.
	ErrIO = errors.New("i/o failed")
)

// mark wraps err with a message and tags it with kind.
func mark(err error, kind error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), kind)
}

// markNew creates a new error tagged with kind.
func markNew(kind error, format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), kind)
}
