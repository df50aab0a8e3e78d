package driving

import (
	"io"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// OutputService renders cleaned entries and reads cleaned outputs back.
type OutputService interface {
	// Render serialises entries to w in the given format. metadata adds the
	// speaker and time prefix to flat-text lines.
	Render(w io.Writer, format domain.OutputFormat, entries []domain.TranscriptEntry, metadata bool) error

	// Load reads a cleaned output file, choosing the format by extension.
	Load(path string) ([]domain.TranscriptEntry, error)

	// IsOutput reports whether path names a cleaned output rather than a
	// source transcript.
	IsOutput(path string) bool
}
