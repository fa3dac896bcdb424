package migrate

import (
	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/value"
)

// Steps runs edits in order.
func Steps(edits ...Edit) Edit {
	return func(s *store.Store) {
		for _, e := range edits {
			if e != nil {
				e(s)
			}
		}
	}
}

// SetDefault stores v at key unless key is already present.
func SetDefault(key string, v value.Value) Edit {
	return func(s *store.Store) {
		if !s.Has(key) {
			s.Set(key, v)
		}
	}
}

// Rename moves the value at from to to. A missing from is a no-op.
func Rename(from, to string) Edit {
	return func(s *store.Store) {
		s.Rename(from, to)
	}
}

// Remove deletes keys.
func Remove(keys ...string) Edit {
	return func(s *store.Store) {
		for _, k := range keys {
			s.Delete(k)
		}
	}
}

// Convert replaces the value at key with fn's result. The value is kept when
// key is missing or fn reports false.
func Convert(key string, fn func(value.Value) (value.Value, bool)) Edit {
	return func(s *store.Store) {
		v, ok := s.Value(key)
		if !ok {
			return
		}
		if out, ok := fn(v); ok {
			s.Set(key, out)
		}
	}
}

// Derive stores at key the result of an expr-lang expression evaluated with
// the record's fields as variables. A run that fails or yields nil leaves
// the Store untouched.
func Derive(key, expression string) (Edit, error) {
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "compile derivation of %q", key)
	}
	return func(s *store.Store) {
		derive(s, key, expression, program)
	}, nil
}

// MustDerive is Derive for expressions known at compile time. It panics when
// the expression does not compile.
func MustDerive(key, expression string) Edit {
	e, err := Derive(key, expression)
	if err != nil {
		panic(err)
	}
	return e
}

func derive(s *store.Store, key, expression string, program *vm.Program) {
	env, _ := value.ToAny(s.Data()).(map[string]any)
	out, err := expr.Run(program, env)
	if err == nil && out == nil {
		return
	}
	var v value.Value
	if err == nil {
		v, err = value.FromAny(out)
	}
	if err != nil {
		format.Logger().Debug("derivation skipped",
			"key", key,
			"expression", expression,
			"error", err,
		)
		return
	}
	s.Set(key, v)
}
