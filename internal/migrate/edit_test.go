package migrate

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/value"
)

func TestEdits(t *testing.T) {
	atoi := func(v value.Value) (value.Value, bool) {
		s, ok := v.(value.String)
		if !ok {
			return nil, false
		}
		n, err := strconv.Atoi(string(s))
		if err != nil {
			return nil, false
		}
		return value.Int(n), true
	}

	tests := []struct {
		name string
		edit Edit
		in   value.Object
		want value.Object
	}{
		{
			name: "default fills missing",
			edit: SetDefault("age", value.Int(10)),
			in:   value.Object{},
			want: value.Object{"age": value.Int(10)},
		},
		{
			name: "default keeps present null",
			edit: SetDefault("age", value.Int(10)),
			in:   value.Object{"age": value.Null{}},
			want: value.Object{"age": value.Null{}},
		},
		{
			name: "rename missing is a no-op",
			edit: Rename("a", "b"),
			in:   value.Object{"c": value.Int(1)},
			want: value.Object{"c": value.Int(1)},
		},
		{
			name: "remove several",
			edit: Remove("a", "b", "missing"),
			in:   value.Object{"a": value.Int(1), "b": value.Int(2), "c": value.Int(3)},
			want: value.Object{"c": value.Int(3)},
		},
		{
			name: "convert text to int",
			edit: Convert("n", atoi),
			in:   value.Object{"n": value.String("42")},
			want: value.Object{"n": value.Int(42)},
		},
		{
			name: "convert keeps unconvertible value",
			edit: Convert("n", atoi),
			in:   value.Object{"n": value.String("many")},
			want: value.Object{"n": value.String("many")},
		},
		{
			name: "derive arithmetic",
			edit: MustDerive("next", "age + 1"),
			in:   value.Object{"age": value.Int(41)},
			want: value.Object{"age": value.Int(41), "next": value.Int(42)},
		},
		{
			name: "derive over nested fields",
			edit: MustDerive("city", "address.city"),
			in:   value.Object{"address": value.Object{"city": value.String("Oslo")}},
			want: value.Object{"address": value.Object{"city": value.String("Oslo")}, "city": value.String("Oslo")},
		},
		{
			name: "derive nil result leaves store",
			edit: MustDerive("x", "missing"),
			in:   value.Object{"a": value.Int(1)},
			want: value.Object{"a": value.Int(1)},
		},
		{
			name: "derive runtime failure leaves store",
			edit: MustDerive("n", "int(name)"),
			in:   value.Object{"name": value.String("John")},
			want: value.Object{"name": value.String("John")},
		},
		{
			name: "steps compose in order",
			edit: Steps(SetDefault("a", value.Int(1)), Rename("a", "b"), nil),
			in:   value.Object{},
			want: value.Object{"b": value.Int(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.Wrap(tt.in)
			tt.edit(s)
			assert.True(t, value.Equal(tt.want, s.Data()), "got %#v", s.Data())
		})
	}
}

func TestDeriveRejectsBadSyntax(t *testing.T) {
	_, err := Derive("x", "name +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x"`)

	assert.Panics(t, func() { MustDerive("x", "(") })
}
