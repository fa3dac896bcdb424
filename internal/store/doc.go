// Package store provides the keyed value container exchanged between a
// format and a model during a read or a write.
//
// A Store wraps exactly one value.Object. Readers pull typed fields out with
// getters that return (T, bool); false means "not found or wrong shape" and
// is the only failure signal the package has. Writers fill a fresh Store with
// setters.
//
// # Value Semantics
//
// A Store owns its graph. Wrap and Data copy, so no two Stores ever alias the
// same containers and a Store handed to a migration cannot leak edits back
// into the caller's copy.
//
// # Concurrency
//
// Stores are not safe for concurrent mutation. Each read or write builds its
// own Store and drops it when the call returns.
package store
