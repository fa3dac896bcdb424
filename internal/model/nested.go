package model

import (
	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/value"
)

// Get decodes the nested record at key.
func Get[T any, PT PtrModel[T]](s *store.Store, key string) (T, bool) {
	child, ok := s.Store(key)
	if !ok {
		var zero T
		return zero, false
	}
	return Read[T, PT](child)
}

// GetSlice decodes the sequence of records at key. One element that fails
// to decode fails the whole sequence.
func GetSlice[T any, PT PtrModel[T]](s *store.Store, key string) ([]T, bool) {
	children, ok := s.Stores(key)
	if !ok {
		return nil, false
	}
	return readAll[T, PT](children)
}

// GetMap decodes the mapping of records at key, all or nothing.
func GetMap[T any, PT PtrModel[T]](s *store.Store, key string) (map[string]T, bool) {
	children, ok := s.StoreMap(key)
	if !ok {
		return nil, false
	}
	return readMap[T, PT](children)
}

// Set writes m as a nested record at key. A nil m leaves s untouched.
func Set[T any, PT PtrModel[T]](s *store.Store, key string, m PT) {
	if (*T)(m) == nil {
		return
	}
	s.SetStore(key, Write(m))
}

// SetSlice writes items in order at key. A nil slice leaves s untouched.
func SetSlice[T any, PT PtrModel[T]](s *store.Store, key string, items []T) {
	if items == nil {
		return
	}
	s.Set(key, writeAll[T, PT](items))
}

// SetMap writes items under their keys at key. A nil map leaves s untouched.
func SetMap[T any, PT PtrModel[T]](s *store.Store, key string, items map[string]T) {
	if items == nil {
		return
	}
	s.Set(key, writeMap[T, PT](items))
}

func readAll[T any, PT PtrModel[T]](children []*store.Store) ([]T, bool) {
	out := make([]T, 0, len(children))
	for _, child := range children {
		item, ok := Read[T, PT](child)
		if !ok {
			return nil, false
		}
		out = append(out, item)
	}
	return out, true
}

func readMap[T any, PT PtrModel[T]](children map[string]*store.Store) (map[string]T, bool) {
	out := make(map[string]T, len(children))
	for k, child := range children {
		item, ok := Read[T, PT](child)
		if !ok {
			return nil, false
		}
		out[k] = item
	}
	return out, true
}

func writeAll[T any, PT PtrModel[T]](items []T) value.Array {
	arr := make(value.Array, len(items))
	for i := range items {
		arr[i] = Write(PT(&items[i])).Data()
	}
	return arr
}

func writeMap[T any, PT PtrModel[T]](items map[string]T) value.Object {
	obj := make(value.Object, len(items))
	for k, item := range items {
		obj[k] = Write(PT(&item)).Data()
	}
	return obj
}
