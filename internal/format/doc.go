// Package format converts value graphs to and from bytes, text and files.
//
// A Format is a stateless codec. Every variant validates that a graph is
// representable before it writes a single byte, so a failed encode never
// produces partial output:
//
//   - Binary: CBOR (RFC 8949) with core deterministic encoding. Carries every
//     value kind, including Dict keys and Bytes.
//   - CompressedBinary: Binary inside a zstd frame.
//   - JSON: structured text. Rejects Bytes, Dict and non-finite floats, and
//     requires an Array or Object root when writing.
//   - CanonicalJSON: JSON emitted as RFC 8785 canonical text.
//   - Plist: XML property lists. Rejects Null and Dict. Parses text directly.
//   - YAML: YAML 1.2 documents. Carries Dict keys and Bytes. Parses text
//     directly.
//
// # Failure Policy
//
// The Format methods and the Encode/Decode/Save/Load helpers return errors
// marked with ErrUnrepresentable, ErrParse or ErrIO. The MakeBytes,
// MakeString, Read, ReadString, WriteFile and ReadFile helpers are the
// boundary used by models: they log the error at debug level and report
// absence instead.
//
// # Atomic Writes
//
// Files are written to a temporary sibling and renamed into place, so a
// reader observes either the old content or the new content, never a
// truncated file.
package format
