package keyed

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/state/internal/format"
)

type gender string

func (g *gender) DecodeFrom(d *Decoder) bool {
	v, ok := Decode[string](d, "value")
	if !ok || (v != "Female" && v != "Male") {
		return false
	}
	*g = gender(v)
	return true
}

func (g gender) EncodeTo(e *Encoder) {
	e.Encode("value", string(g))
}

type pet struct {
	Name string
	Legs int
}

func (p *pet) DecodeFrom(d *Decoder) bool {
	name, ok1 := Decode[string](d, "name")
	legs, ok2 := Decode[int](d, "legs")
	p.Name, p.Legs = name, legs
	return ok1 && ok2
}

func (p pet) EncodeTo(e *Encoder) {
	e.Encode("name", p.Name)
	e.Encode("legs", p.Legs)
}

type owner struct {
	Name    string
	Age     int
	Weight  float64
	Tags    []string
	Gender  gender
	Pets    []pet
	ByName  map[string]pet
	Nick    *string
	Decoded bool
}

func (o *owner) MigrateDecoder(d *Decoder) *Decoder {
	if v, _ := Decode[int](d, "version"); v >= 2 {
		return d
	}
	if !d.Has("age") {
		d.Data()["age"] = int64(10)
	}
	return d
}

func (o *owner) DecodeFrom(d *Decoder) bool {
	var ok [5]bool
	o.Name, ok[0] = Decode[string](d, "name")
	o.Age, ok[1] = Decode[int](d, "age")
	o.Gender, ok[2] = DecodeModel[gender](d, "gender")
	o.Pets, ok[3] = DecodeModelSlice[pet](d, "pets")
	o.ByName, ok[4] = DecodeModelMap[pet](d, "by_name")
	o.Weight, _ = Decode[float64](d, "weight")
	o.Tags, _ = Decode[[]string](d, "tags")
	if nick, found := Decode[string](d, "nick"); found {
		o.Nick = &nick
	}
	return ok[0] && ok[1] && ok[2] && ok[3] && ok[4]
}

func (o *owner) FinishDecoding(*Decoder) {
	o.Decoded = true
}

func (o owner) EncodeTo(e *Encoder) {
	e.Encode("name", o.Name)
	e.Encode("age", o.Age)
	e.Encode("weight", o.Weight)
	e.Encode("tags", o.Tags)
	e.EncodeModel("gender", o.Gender)
	EncodeModelSlice(e, "pets", o.Pets)
	EncodeModelMap(e, "by_name", o.ByName)
	if o.Nick != nil {
		e.Encode("nick", *o.Nick)
	}
}

func (o owner) EncodeVersion(e *Encoder) {
	e.Encode("version", 2)
}

func sampleOwner() owner {
	return owner{
		Name:   "John",
		Age:    42,
		Weight: 80.5,
		Tags:   []string{"a", "b"},
		Gender: "Male",
		Pets:   []pet{{Name: "Rex", Legs: 4}, {Name: "Tweety", Legs: 2}},
		ByName: map[string]pet{"rex": {Name: "Rex", Legs: 4}},
	}
}

func TestDecodeFileRoundTrip(t *testing.T) {
	for _, f := range []format.Format{format.JSON(), format.Binary(), format.Plist(), format.YAML()} {
		t.Run(f.Name(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "owner")
			require.True(t, EncodeFile(f, sampleOwner(), path))

			got, ok := DecodeFile[owner](f, path)
			require.True(t, ok)

			want := sampleOwner()
			want.Decoded = true
			assert.Equal(t, want, got)
		})
	}
}

func TestEncodeStampsVersion(t *testing.T) {
	data := Encode(sampleOwner())
	assert.Equal(t, 2, data["version"])
	assert.NotContains(t, data, "nick")
}

func TestMigrateDecoderFillsDefaults(t *testing.T) {
	data := Encode(sampleOwner())
	delete(data, "version")
	delete(data, "age")

	got, ok := FromMap[owner](data)
	require.True(t, ok)
	assert.Equal(t, 10, got.Age)
	assert.NotContains(t, data, "age", "migration works on a copy")
}

func TestModelSliceAllOrNothing(t *testing.T) {
	data := Encode(sampleOwner())
	data["pets"] = []any{
		map[string]any{"name": "a", "legs": 4},
		map[string]any{"name": "b", "legs": 4},
		map[string]any{"name": "c", "legs": 4},
		map[string]any{"name": "broken"},
	}

	_, ok := FromMap[owner](data)
	assert.False(t, ok)

	d := NewDecoder(data)
	pets, ok := DecodeModelSlice[pet](d, "pets")
	assert.False(t, ok)
	assert.Nil(t, pets)
}

func TestDecodeCoercion(t *testing.T) {
	d := NewDecoder(map[string]any{
		"int64":    int64(7),
		"whole":    float64(3),
		"fraction": 2.5,
		"text":     "x",
		"tags":     []any{"a", "b"},
		"mixed":    []any{"a", 1},
		"null":     nil,
	})

	n, ok := Decode[int](d, "int64")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = Decode[int](d, "whole")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = Decode[int](d, "fraction")
	assert.False(t, ok)

	f, ok := Decode[float32](d, "int64")
	require.True(t, ok)
	assert.Equal(t, float32(7), f)

	tags, ok := Decode[[]string](d, "tags")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, tags)

	_, ok = Decode[[]string](d, "mixed")
	assert.False(t, ok)

	_, ok = Decode[int](d, "text")
	assert.False(t, ok)

	_, ok = Decode[string](d, "null")
	assert.False(t, ok)

	_, ok = Decode[string](d, "missing")
	assert.False(t, ok)
}

func TestEnumRejectsUnknownValue(t *testing.T) {
	_, ok := FromMap[gender](map[string]any{"value": "Other"})
	assert.False(t, ok)

	g, ok := FromAny[gender](Encode(gender("Female")))
	require.True(t, ok)
	assert.Equal(t, gender("Female"), g)

	_, ok = FromAny[gender]("Female")
	assert.False(t, ok)
}

func TestEncoderSkipsAbsence(t *testing.T) {
	e := NewEncoder()
	e.Encode("nil", nil)
	e.EncodeModel("model", nil)
	EncodeModelSlice[pet](e, "slice", nil)
	EncodeModelMap[pet](e, "map", nil)
	assert.Empty(t, e.Data())
}

func TestEncoderSkipsTypedNilModels(t *testing.T) {
	e := NewEncoder()
	var child *pet
	assert.NotPanics(t, func() {
		e.EncodeModel("child", child)
		EncodeModelSlice(e, "slice", []*pet{{Name: "Rex", Legs: 4}, nil})
		EncodeModelMap(e, "map", map[string]*pet{"rex": {Name: "Rex", Legs: 4}, "ghost": nil})
	})

	data := e.Data()
	assert.NotContains(t, data, "child")
	assert.Equal(t, []any{map[string]any{"name": "Rex", "legs": 4}, nil}, data["slice"])
	assert.Equal(t, map[string]any{"rex": map[string]any{"name": "Rex", "legs": 4}}, data["map"])
}

func TestEncodeFileRejectsUnsupportedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	assert.False(t, EncodeFile(format.JSON(), badEncodable{}, path))
}

type badEncodable struct{}

func (badEncodable) EncodeTo(e *Encoder) {
	e.Encode("ch", make(chan int))
}
