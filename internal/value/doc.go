// Package value provides the dynamically-typed value graph exchanged between
// stores and formats.
//
// This package contains the value types and the codecs that only depend on
// them. Every other internal package imports value; value imports nothing
// internal.
//
// Key design constraints:
//   - The graph is a tree. Containers hold values, never references to
//     other containers, so cycles cannot be expressed.
//   - Absence (a missing key) is not Null. Null is a present value.
//   - Int and Float are distinct kinds and must survive every round trip.
//   - Object keys are strings. Dict exists for the rare graph whose map keys
//     are not text; only some formats can carry it.
package value
