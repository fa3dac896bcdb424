package model

import (
	"net/url"

	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/transform"
	"github.com/roach88/state/internal/value"
)

var employeeVersion = value.VersionHash("Employee", "name:string", "title:string")

type employee struct {
	Name  string
	Title string
}

func (e *employee) ReadFrom(s *store.Store) bool {
	r := NewReader(s)
	e.Name = r.String("name")
	e.Title = r.String("title")
	return r.OK()
}

func (e *employee) WriteTo(s *store.Store) {
	w := NewWriter(s)
	w.String("name", e.Name)
	w.String("title", e.Title)
}

func (e *employee) WriteVersion(s *store.Store) {
	StampVersion(s, employeeVersion)
}

// migrationV1 is the first persisted shape of a record that later gained an
// age field.
type migrationV1 struct {
	Name string
}

func (m *migrationV1) ReadFrom(s *store.Store) bool {
	r := NewReader(s)
	m.Name = r.String("name")
	return r.OK()
}

func (m *migrationV1) WriteTo(s *store.Store) {
	NewWriter(s).String("name", m.Name)
}

func (m *migrationV1) WriteVersion(s *store.Store) {
	StampVersion(s, "v1")
}

func (m *migrationV1) FinishWriting(s *store.Store) {
	s.SetString("migration_test", "Hello World")
}

type migrationV2 struct {
	Name string
	Age  int
}

func (m *migrationV2) Migrate(src *store.Store) *store.Store {
	if v, _ := VersionOf(src); v == "v2" {
		return src
	}
	if !src.Has("age") {
		src.SetInt("age", 10)
	}
	StampVersion(src, "v2")
	return src
}

func (m *migrationV2) ReadFrom(s *store.Store) bool {
	r := NewReader(s)
	m.Name = r.String("name")
	m.Age = r.Int("age")
	return r.OK()
}

func (m *migrationV2) WriteTo(s *store.Store) {
	w := NewWriter(s)
	w.String("name", m.Name)
	w.Int("age", m.Age)
}

func (m *migrationV2) WriteVersion(s *store.Store) {
	StampVersion(s, "v2")
}

type child struct {
	Name string
	Age  *int
}

func (c *child) ReadFrom(s *store.Store) bool {
	r := NewReader(s)
	c.Name = r.String("name")
	c.Age = r.OptInt("age")
	return r.OK()
}

func (c *child) WriteTo(s *store.Store) {
	w := NewWriter(s)
	w.String("name", c.Name)
	w.OptInt("age", c.Age)
}

type relationships struct {
	Children []child
	ByName   map[string]child
	OneChild *child
	Eldest   child
}

func (r *relationships) ReadFrom(s *store.Store) bool {
	rd := NewReader(s)
	r.Children = OptSlice[child](rd, "children")
	r.ByName = OptMap[child](rd, "by_name")
	r.OneChild = OptField[child](rd, "one_child")
	r.Eldest = Field[child](rd, "eldest")
	return rd.OK()
}

func (r *relationships) WriteTo(s *store.Store) {
	w := NewWriter(s)
	PutSlice(w, "children", r.Children)
	PutMap(w, "by_name", r.ByName)
	PutField(w, "one_child", r.OneChild)
	PutField(w, "eldest", &r.Eldest)
}

type transformable struct {
	Link     *url.URL
	Optional *url.URL

	err error
}

func (t *transformable) ReadFrom(s *store.Store) bool {
	r := NewReader(s)
	t.Link = Transformed(r, "link", transform.URL())
	if u := OptTransformed(r, "optional", transform.URL()); u != nil {
		t.Optional = *u
	}
	t.err = r.Err()
	return r.OK()
}

func (t *transformable) DecodeErr() error { return t.err }

func (t *transformable) WriteTo(s *store.Store) {
	w := NewWriter(s)
	PutTransformed(w, "link", t.Link, transform.URL())
	if t.Optional != nil {
		PutTransformed(w, "optional", t.Optional, transform.URL())
	}
}

// transient derives a field that is never persisted.
type transient struct {
	First    string
	Last     string
	FullName string
}

func (t *transient) ReadFrom(s *store.Store) bool {
	r := NewReader(s)
	t.First = r.String("first")
	t.Last = r.String("last")
	return r.OK()
}

func (t *transient) WriteTo(s *store.Store) {
	w := NewWriter(s)
	w.String("first", t.First)
	w.String("last", t.Last)
}

func (t *transient) FinishReading(*store.Store) {
	t.FullName = t.First + " " + t.Last
}

var transformURL = transform.URL()
