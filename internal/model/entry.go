package model

import (
	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/value"
)

// FromValue decodes a record from an Object-shaped value.
func FromValue[T any, PT PtrModel[T]](v value.Value) (T, bool) {
	s, ok := store.FromValue(v)
	if !ok {
		var zero T
		return zero, false
	}
	return Read[T, PT](s)
}

// FromObject decodes a record from obj.
func FromObject[T any, PT PtrModel[T]](obj value.Object) (T, bool) {
	return Read[T, PT](store.Wrap(obj))
}

// Parse decodes a record from data in format f.
func Parse[T any, PT PtrModel[T]](f format.Format, data []byte) (T, bool) {
	v, ok := format.Read(f, data)
	if !ok {
		var zero T
		return zero, false
	}
	return FromValue[T, PT](v)
}

// ParseString decodes a record from text in format f.
func ParseString[T any, PT PtrModel[T]](f format.Format, text string) (T, bool) {
	v, ok := format.ReadString(f, text)
	if !ok {
		var zero T
		return zero, false
	}
	return FromValue[T, PT](v)
}

// Load decodes a record from the file at path.
func Load[T any, PT PtrModel[T]](f format.Format, path string) (T, bool) {
	v, ok := format.ReadFile(f, path)
	if !ok {
		var zero T
		return zero, false
	}
	return FromValue[T, PT](v)
}

// ToObject writes m and returns its graph.
func ToObject(m Model) value.Object {
	return Write(m).Data()
}

// Marshal writes m and serializes it with f.
func Marshal(f format.Format, m Model, pretty bool) ([]byte, bool) {
	return format.MakeBytes(f, ToObject(m), pretty)
}

// MarshalString writes m and serializes it as text with f.
func MarshalString(f format.Format, m Model) (string, bool) {
	return format.MakeString(f, ToObject(m))
}

// Save writes m and atomically stores it at path.
func Save(f format.Format, m Model, path string) bool {
	return format.WriteFile(f, ToObject(m), path)
}

// FromArray decodes a sequence of records, all or nothing.
func FromArray[T any, PT PtrModel[T]](v value.Value) ([]T, bool) {
	arr, ok := v.(value.Array)
	if !ok {
		return nil, false
	}
	children := make([]*store.Store, 0, len(arr))
	for _, elem := range arr {
		child, ok := store.FromValue(elem)
		if !ok {
			return nil, false
		}
		children = append(children, child)
	}
	return readAll[T, PT](children)
}

// ParseSlice decodes a sequence of records from data.
func ParseSlice[T any, PT PtrModel[T]](f format.Format, data []byte) ([]T, bool) {
	v, ok := format.Read(f, data)
	if !ok {
		return nil, false
	}
	return FromArray[T, PT](v)
}

// ParseSliceString decodes a sequence of records from text.
func ParseSliceString[T any, PT PtrModel[T]](f format.Format, text string) ([]T, bool) {
	v, ok := format.ReadString(f, text)
	if !ok {
		return nil, false
	}
	return FromArray[T, PT](v)
}

// LoadSlice decodes a sequence of records from the file at path.
func LoadSlice[T any, PT PtrModel[T]](f format.Format, path string) ([]T, bool) {
	v, ok := format.ReadFile(f, path)
	if !ok {
		return nil, false
	}
	return FromArray[T, PT](v)
}

// ToArray writes every record in order.
func ToArray[T any, PT PtrModel[T]](items []T) value.Array {
	return writeAll[T, PT](items)
}

// MarshalSlice writes items and serializes them with f.
func MarshalSlice[T any, PT PtrModel[T]](f format.Format, items []T, pretty bool) ([]byte, bool) {
	return format.MakeBytes(f, ToArray[T, PT](items), pretty)
}

// MarshalSliceString writes items and serializes them as text with f.
func MarshalSliceString[T any, PT PtrModel[T]](f format.Format, items []T) (string, bool) {
	return format.MakeString(f, ToArray[T, PT](items))
}

// SaveSlice writes items and atomically stores them at path.
func SaveSlice[T any, PT PtrModel[T]](f format.Format, items []T, path string) bool {
	return format.WriteFile(f, ToArray[T, PT](items), path)
}

// FromMapObject decodes a mapping of records, all or nothing.
func FromMapObject[T any, PT PtrModel[T]](v value.Value) (map[string]T, bool) {
	obj, ok := v.(value.Object)
	if !ok {
		return nil, false
	}
	children := make(map[string]*store.Store, len(obj))
	for k, elem := range obj {
		child, ok := store.FromValue(elem)
		if !ok {
			return nil, false
		}
		children[k] = child
	}
	return readMap[T, PT](children)
}

// ParseMap decodes a mapping of records from data.
func ParseMap[T any, PT PtrModel[T]](f format.Format, data []byte) (map[string]T, bool) {
	v, ok := format.Read(f, data)
	if !ok {
		return nil, false
	}
	return FromMapObject[T, PT](v)
}

// ParseMapString decodes a mapping of records from text.
func ParseMapString[T any, PT PtrModel[T]](f format.Format, text string) (map[string]T, bool) {
	v, ok := format.ReadString(f, text)
	if !ok {
		return nil, false
	}
	return FromMapObject[T, PT](v)
}

// LoadMap decodes a mapping of records from the file at path.
func LoadMap[T any, PT PtrModel[T]](f format.Format, path string) (map[string]T, bool) {
	v, ok := format.ReadFile(f, path)
	if !ok {
		return nil, false
	}
	return FromMapObject[T, PT](v)
}

// ToMapObject writes every record under its key.
func ToMapObject[T any, PT PtrModel[T]](items map[string]T) value.Object {
	return writeMap[T, PT](items)
}

// MarshalMap writes items and serializes them with f.
func MarshalMap[T any, PT PtrModel[T]](f format.Format, items map[string]T, pretty bool) ([]byte, bool) {
	return format.MakeBytes(f, ToMapObject[T, PT](items), pretty)
}

// MarshalMapString writes items and serializes them as text with f.
func MarshalMapString[T any, PT PtrModel[T]](f format.Format, items map[string]T) (string, bool) {
	return format.MakeString(f, ToMapObject[T, PT](items))
}

// SaveMap writes items and atomically stores them at path.
func SaveMap[T any, PT PtrModel[T]](f format.Format, items map[string]T, path string) bool {
	return format.WriteFile(f, ToMapObject[T, PT](items), path)
}
