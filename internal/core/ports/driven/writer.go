package driven

import (
	"io"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// WriteOptions tunes a single serialisation.
type WriteOptions struct {
	// Metadata prefixes flat-text lines with speaker and time.
	// Structured formats always carry speaker and time.
	Metadata bool
}

// TranscriptWriter serialises cleaned entries in one output format.
type TranscriptWriter interface {
	// Format returns the output format this writer produces.
	Format() domain.OutputFormat

	// Write serialises entries, in order, to w.
	Write(w io.Writer, entries []domain.TranscriptEntry, opts WriteOptions) error
}

// TranscriptReader is implemented by writers whose output can be read back
// into entries. Flat text without metadata cannot be.
type TranscriptReader interface {
	// Read parses a previously written output.
	Read(r io.Reader) ([]domain.TranscriptEntry, error)
}

// WriterRegistry maps output formats to writers and saves outputs.
type WriterRegistry interface {
	// Get returns the writer for a format.
	// Returns domain.ErrUnsupportedType for unknown formats.
	Get(format domain.OutputFormat) (TranscriptWriter, error)

	// Save serialises entries to path atomically.
	// Returns domain.ErrOutputExists if path already exists.
	Save(path string, format domain.OutputFormat, entries []domain.TranscriptEntry, opts WriteOptions) error

	// Load reads a cleaned output back, choosing the format by extension.
	// Returns domain.ErrUnsupportedType if the format cannot be read.
	Load(path string) ([]domain.TranscriptEntry, error)
}
