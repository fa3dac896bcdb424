package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check via assignment
	var _ Value = Null{}
	var _ Value = Bool(true)
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = String("test")
	var _ Value = Bytes{0x01}
	var _ Value = Array{String("a"), Int(1)}
	var _ Value = Object{"key": String("value")}
	var _ Value = Dict{{Key: Int(1), Value: String("one")}}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    Value
		want Kind
	}{
		{Null{}, KindNull},
		{Bool(false), KindBool},
		{Int(0), KindInt},
		{Float(0), KindFloat},
		{String(""), KindString},
		{Bytes(nil), KindBytes},
		{Array{}, KindArray},
		{Object{}, KindObject},
		{Dict{}, KindDict},
		{nil, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.v))
		})
	}
}

func TestObjectSortedKeys(t *testing.T) {
	obj := Object{
		"zebra":  String("z"),
		"apple":  String("a"),
		"banana": String("b"),
	}

	assert.Equal(t, []string{"apple", "banana", "zebra"}, obj.SortedKeys())
}

func TestObjectSortedKeysRFC8785Order(t *testing.T) {
	// 'A' = 65, 'a' = 97, so uppercase sorts first at each position.
	obj := Object{"a": Int(1), "A": Int(2), "aa": Int(3), "aA": Int(4), "Aa": Int(5), "AA": Int(6)}

	assert.Equal(t, []string{"A", "AA", "Aa", "a", "aA", "aa"}, obj.SortedKeys())
}

func TestCompareKeysRFC8785(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
		{"aa", "a", 1},
		{"a", "aa", -1},
		{"A", "a", -1},
		{"", "", 0},
		{"", "a", -1},
		// U+FB01 is one UTF-16 unit; U+1F600 is a surrogate pair starting 0xD83D.
		{"\U0001F600", "\ufb01", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, compareKeysRFC8785(tt.a, tt.b))
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null", Null{}, Null{}, true},
		{"int vs float", Int(1), Float(1), false},
		{"bytes", Bytes("ab"), Bytes("ab"), true},
		{"array order", Array{Int(1), Int(2)}, Array{Int(2), Int(1)}, false},
		{"object", Object{"a": Int(1), "b": Null{}}, Object{"b": Null{}, "a": Int(1)}, true},
		{"object missing key", Object{"a": Int(1)}, Object{"b": Int(1)}, false},
		{"dict order", Dict{{Int(1), String("x")}, {Int(2), String("y")}}, Dict{{Int(2), String("y")}, {Int(1), String("x")}}, true},
		{"dict vs object", Dict{{String("a"), Int(1)}}, Object{"a": Int(1)}, false},
		{"nan", Float(math.NaN()), Float(math.NaN()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Object{
		"list":  Array{Int(1), Object{"inner": String("x")}},
		"blob":  Bytes{1, 2, 3},
		"table": Dict{{Int(7), Array{Bool(true)}}},
	}

	cp := Clone(orig).(Object)
	require.True(t, Equal(orig, cp))

	cp["list"].(Array)[1].(Object)["inner"] = String("changed")
	cp["blob"].(Bytes)[0] = 9
	cp["table"].(Dict)[0].Value.(Array)[0] = Bool(false)

	assert.Equal(t, String("x"), orig["list"].(Array)[1].(Object)["inner"])
	assert.Equal(t, byte(1), orig["blob"].(Bytes)[0])
	assert.Equal(t, Bool(true), orig["table"].(Dict)[0].Value.(Array)[0])
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Object{"a": Dict{{Int(1), Null{}}, {String("1"), Null{}}}}))

	err := Validate(Array{Int(1), nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")

	err = Validate(Dict{{Array{}, Int(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not scalar")

	err = Validate(Dict{{Int(1), Int(1)}, {Int(1), Int(2)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")

	for _, d := range []Dict{{{String("a"), Int(1)}}, {}} {
		err = Validate(Object{"m": d})
		require.Error(t, err, "text-keyed dict %v", d)
		assert.Contains(t, err.Error(), "must be an Object")
	}
}

func TestVersionHash(t *testing.T) {
	h := VersionHash("name:string", "title:string")

	assert.Regexp(t, `^<([0-9a-f]{8} ){7}[0-9a-f]{8}>$`, h)
	assert.Equal(t, h, VersionHash("name:string", "title:string"), "hash must be stable")
	assert.NotEqual(t, h, VersionHash("title:string", "name:string"), "field order is part of the shape")
	assert.NotEqual(t, h, VersionHash("name:string"))
}

func TestHashValue(t *testing.T) {
	a, err := HashValue("test/v1", Object{"b": Int(1), "a": Int(2)})
	require.NoError(t, err)
	b, err := HashValue("test/v1", Object{"a": Int(2), "b": Int(1)})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = HashValue("test/v1", Bytes{1})
	assert.Error(t, err)
}
