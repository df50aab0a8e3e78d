// Package domain defines the core business entities for tclean.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Utterance: A raw speaker/timestamp/speech triple from one paragraph
//   - TranscriptEntry: A normalised, anonymised transcript line
//   - DocumentContext: Per-file context derived from the transcript path
//   - RawDocument: Opaque bytes from a connector
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
