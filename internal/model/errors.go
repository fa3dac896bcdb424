package model

import "github.com/cockroachdb/errors"

var (
	// ErrDecode marks a required field that is absent or has the wrong shape
	// after migration.
	ErrDecode = errors.New("decode failed")
	// ErrTransform marks a stored value a Transform could not reverse.
	ErrTransform = errors.New("transform failed")
)
