// Package schema validates value graphs against CUE schemas.
//
// A schema file describes record shapes as CUE definitions:
//
//	#Employee: {
//		name:  string
//		title: string
//		age?:  int & >=0
//		"__state_version"?: string
//	}
//
// Validate encodes a graph as CUE data, unifies it with the selected
// definition and reports every conflict as an Issue. Definitions are closed,
// so records that carry a version tag must declare the tag's key.
package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/state/internal/value"
)

// Error codes reported by Load and Compile.
const (
	CodeNotFound    = "E005" // path not found
	CodeNoFiles     = "E003" // directory holds no .cue files
	CodeLoadFailed  = "E004" // CUE load failed
	CodeBuildFailed = "E006" // CUE build failed
	CodeNoPath      = "E201" // lookup path missing from schema
	CodeEncode      = "E202" // graph cannot be expressed as CUE data
)

// Error is a schema loading or lookup failure.
type Error struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Issue is one conflict between a graph and a schema.
type Issue struct {
	Path    string    `json:"path"`
	Message string    `json:"message"`
	Pos     token.Pos `json:"-"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Schema is a compiled CUE schema.
type Schema struct {
	ctx   *cue.Context
	root  cue.Value
	files int
}

// Compile builds a schema from CUE source.
func Compile(src []byte, filename string) (*Schema, error) {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(src, cue.Filename(filename))
	if err := root.Err(); err != nil {
		return nil, buildError(err)
	}
	return &Schema{ctx: ctx, root: root, files: 1}, nil
}

// Load builds a schema from a .cue file or from every .cue file of one
// package in a directory.
func Load(path string) (*Schema, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("schema not found: %s", path)}
	}
	if err != nil {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("error accessing schema: %v", err)}
	}

	if !info.IsDir() {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, &Error{Code: CodeLoadFailed, Message: fmt.Sprintf("reading schema: %v", err)}
		}
		return Compile(src, path)
	}

	files, err := FindCUEFiles(path)
	if err != nil {
		return nil, &Error{Code: CodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &Error{Code: CodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return nil, &Error{Code: CodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &Error{Code: CodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}
	root := ctx.BuildInstance(inst)
	if err := root.Err(); err != nil {
		return nil, buildError(err)
	}
	return &Schema{ctx: ctx, root: root, files: len(files)}, nil
}

// FindCUEFiles walks dir and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// FileCount returns the number of CUE files the schema was built from.
func (s *Schema) FileCount() int {
	return s.files
}

// Definitions lists the top-level definitions, sorted.
func (s *Schema) Definitions() []string {
	iter, err := s.root.Fields(cue.Definitions(true))
	if err != nil {
		return nil
	}
	var defs []string
	for iter.Next() {
		if sel := iter.Selector(); sel.IsDefinition() {
			defs = append(defs, sel.String())
		}
	}
	sort.Strings(defs)
	return defs
}

// Lookup returns the schema value at path. An empty path is the whole
// schema.
func (s *Schema) Lookup(path string) (cue.Value, error) {
	if path == "" {
		return s.root, nil
	}
	v := s.root.LookupPath(cue.ParsePath(path))
	if !v.Exists() {
		return cue.Value{}, &Error{Code: CodeNoPath, Message: fmt.Sprintf("schema has no %s", path)}
	}
	return v, nil
}

// Validate checks v against the schema value at path. The error reports
// problems with the schema or with encoding v; conflicts between v and the
// schema come back as issues.
func (s *Schema) Validate(v value.Value, path string) ([]Issue, error) {
	target, err := s.Lookup(path)
	if err != nil {
		return nil, err
	}
	if err := value.Validate(v); err != nil {
		return nil, &Error{Code: CodeEncode, Message: err.Error()}
	}
	if containsDict(v) {
		return nil, &Error{Code: CodeEncode, Message: "non-text map keys have no CUE representation"}
	}

	data := s.ctx.Encode(value.ToAny(v))
	if err := data.Err(); err != nil {
		return nil, &Error{Code: CodeEncode, Message: err.Error()}
	}

	unified := target.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return issues(err), nil
	}
	return nil, nil
}

func issues(err error) []Issue {
	var out []Issue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
			Pos:     e.Position(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

func buildError(err error) *Error {
	e := &Error{Code: CodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		e.Pos = errs[0].Position()
	}
	return e
}

func containsDict(v value.Value) bool {
	switch val := v.(type) {
	case value.Dict:
		return true
	case value.Array:
		for _, elem := range val {
			if containsDict(elem) {
				return true
			}
		}
	case value.Object:
		for _, elem := range val {
			if containsDict(elem) {
				return true
			}
		}
	}
	return false
}
