package model

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/store"
)

// VersionKey is the reserved Store key holding a record's version tag.
const VersionKey = "__state_version"

// Model is implemented by the pointer type of every persisted record.
type Model interface {
	// ReadFrom fills the receiver from s. It reports false when a required
	// field is missing or has the wrong shape.
	ReadFrom(s *store.Store) bool

	// WriteTo stores every field of the receiver into s.
	WriteTo(s *store.Store)
}

// Migrator rewrites a Store persisted by an older version of the type before
// any field is read. Migrate receives a private copy it may edit in place,
// and must be deterministic and idempotent for a Store already at the
// current version.
type Migrator interface {
	Migrate(src *store.Store) *store.Store
}

// VersionWriter stamps the type's version tag after its fields are written.
type VersionWriter interface {
	WriteVersion(s *store.Store)
}

// ReadFinisher runs after a successful field decode with the migrated Store.
type ReadFinisher interface {
	FinishReading(s *store.Store)
}

// WriteFinisher runs last on the write path and may add extra keys.
type WriteFinisher interface {
	FinishWriting(s *store.Store)
}

// DecodeErrorReporter explains why the last ReadFrom returned false. Models
// usually return their Reader's Err.
type DecodeErrorReporter interface {
	DecodeErr() error
}

// PtrModel constrains PT to be *T implementing Model, so generic helpers can
// create a T and call its pointer methods.
type PtrModel[T any] interface {
	*T
	Model
}

// State is a step of the decode state machine. Migrated and FieldsDecoded
// are passed through internally; a decode stops at Unmigrated, Failed or
// Finished.
type State int

// Decode states.
const (
	Unmigrated State = iota
	Migrated
	FieldsDecoded
	Finished
	Failed
)

func (st State) String() string {
	switch st {
	case Unmigrated:
		return "unmigrated"
	case Migrated:
		return "migrated"
	case FieldsDecoded:
		return "fields-decoded"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(st))
	}
}

// Read decodes a T from s, running migration and the finish hook.
func Read[T any, PT PtrModel[T]](s *store.Store) (T, bool) {
	out, st, err := decode[T, PT](s)
	if err != nil {
		format.Logger().Debug("model decode failed",
			"type", fmt.Sprintf("%T", out),
			"state", st.String(),
			"error", err,
		)
		var zero T
		return zero, false
	}
	return out, true
}

// Trace is Read that also reports the state the decode stopped in and, on
// failure, an error marked ErrDecode. When T implements DecodeErrorReporter
// its error is included, so a transform failure also matches ErrTransform.
// On failure the returned value is the zero T.
func Trace[T any, PT PtrModel[T]](s *store.Store) (T, State, error) {
	return decode[T, PT](s)
}

// Migrate applies T's migration hook to a copy of s. Types without a hook
// get an unchanged copy back.
func Migrate[T any, PT PtrModel[T]](s *store.Store) *store.Store {
	src := s.Clone()
	m, ok := any(PT(new(T))).(Migrator)
	if !ok {
		return src
	}
	if out := m.Migrate(src); out != nil {
		return out
	}
	return src
}

func decode[T any, PT PtrModel[T]](s *store.Store) (T, State, error) {
	var zero T
	if s == nil {
		return zero, Unmigrated, errors.Mark(errors.New("no store"), ErrDecode)
	}

	migrated := Migrate[T, PT](s)

	var out T
	if !PT(&out).ReadFrom(migrated) {
		err := errors.Newf("%T: required field missing or malformed", out)
		if rep, ok := any(PT(&out)).(DecodeErrorReporter); ok {
			if cause := rep.DecodeErr(); cause != nil {
				err = errors.Wrapf(cause, "%T", out)
			}
		}
		return zero, Failed, errors.Mark(err, ErrDecode)
	}

	if f, ok := any(PT(&out)).(ReadFinisher); ok {
		f.FinishReading(migrated)
	}
	return out, Finished, nil
}

// Write stores m into a fresh Store: fields, then version, then the finish
// hook.
func Write(m Model) *store.Store {
	s := store.New()
	m.WriteTo(s)
	if vw, ok := m.(VersionWriter); ok {
		vw.WriteVersion(s)
	}
	if f, ok := m.(WriteFinisher); ok {
		f.FinishWriting(s)
	}
	return s
}

// StampVersion writes tag under VersionKey.
func StampVersion(s *store.Store, tag string) {
	s.SetString(VersionKey, tag)
}

// VersionOf returns the version tag of s. Stores written before the type
// stamped versions report false.
func VersionOf(s *store.Store) (string, bool) {
	return s.String(VersionKey)
}
