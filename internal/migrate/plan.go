// Package migrate builds model migrations from explicit version chains and
// reusable Store edits.
//
// A Plan walks a Store from the version it was written with to the current
// version one Step at a time:
//
//	var plan = migrate.Plan{
//		Current: "v3",
//		Steps: []migrate.Step{
//			{From: "", To: "v1", Apply: migrate.SetDefault("age", value.Int(10))},
//			{From: "v1", To: "v2", Apply: migrate.Rename("title", "role")},
//			{From: "v2", To: "v3", Apply: migrate.MustDerive("label", `name + " (" + role + ")"`)},
//		},
//	}
//
//	func (*Employee) Migrate(src *store.Store) *store.Store { return plan.Migrate(src) }
//
// Migrations never fail. An edit that cannot apply leaves the Store as it
// is, and a Store whose version has no matching step is returned untouched
// so the field decode that follows reports the problem.
package migrate

import (
	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/model"
	"github.com/roach88/state/internal/store"
)

// Edit changes a Store in place.
type Edit func(s *store.Store)

// Step upgrades a Store written at version From to version To.
type Step struct {
	From  string
	To    string
	Apply Edit
}

// Plan is the ordered upgrade path of one record type.
type Plan struct {
	// Current is the version the type writes today.
	Current string
	// Steps are matched by From. The empty From matches Stores that carry
	// no version tag.
	Steps []Step
}

// Migrate upgrades src in place and returns it. A Store already at Current
// is returned unchanged, which makes Migrate idempotent.
func (p Plan) Migrate(src *store.Store) *store.Store {
	version, _ := model.VersionOf(src)
	// Each step runs at most once, so a plan with a cycle still terminates.
	for range p.Steps {
		if version == p.Current {
			return src
		}
		step, ok := p.step(version)
		if !ok {
			format.Logger().Debug("no migration step",
				"from", version,
				"current", p.Current,
			)
			return src
		}
		if step.Apply != nil {
			step.Apply(src)
		}
		model.StampVersion(src, step.To)
		version = step.To
	}
	return src
}

// Path lists the versions Migrate would pass through starting at from,
// ending with Current. It reports false when the chain is broken.
func (p Plan) Path(from string) ([]string, bool) {
	var path []string
	version := from
	for range p.Steps {
		if version == p.Current {
			return path, true
		}
		step, ok := p.step(version)
		if !ok {
			return path, false
		}
		path = append(path, step.To)
		version = step.To
	}
	return path, version == p.Current
}

func (p Plan) step(from string) (Step, bool) {
	for _, s := range p.Steps {
		if s.From == from {
			return s, true
		}
	}
	return Step{}, false
}
