// Package model defines how typed Go values read themselves from and write
// themselves to a store.Store, and how persisted records evolve.
//
// A domain type opts in by implementing Model on its pointer type:
//
//	type Employee struct {
//		Name  string
//		Title string
//	}
//
//	func (e *Employee) ReadFrom(s *store.Store) bool {
//		r := model.NewReader(s)
//		e.Name = r.String("name")
//		e.Title = r.String("title")
//		return r.OK()
//	}
//
//	func (e *Employee) WriteTo(s *store.Store) {
//		w := model.NewWriter(s)
//		w.String("name", e.Name)
//		w.String("title", e.Title)
//	}
//
// # Decode State Machine
//
// Every decode walks Unmigrated → Migrated → FieldsDecoded → Finished, or
// stops in Failed:
//
//   - Migrated: the Migrator hook (identity when absent) rewrites a private
//     copy of the incoming Store. Migrations never fail.
//   - FieldsDecoded: ReadFrom pulls every field. A missing or wrong-shaped
//     required field fails the whole record.
//   - Finished: the ReadFinisher hook sees the migrated Store.
//
// A failed decode never exposes a partially built value: callers get the
// zero value and false.
//
// # Write Path
//
// Write runs WriteTo on a fresh Store, then the VersionWriter hook, then the
// WriteFinisher hook. Collections apply the same contract per element and
// are all or nothing on the way back in.
//
// # Versioning
//
// The version tag lives under VersionKey. Types stamp it from WriteVersion
// with StampVersion and inspect it from Migrate with VersionOf; see the
// migrate package for chained multi-step plans.
package model
