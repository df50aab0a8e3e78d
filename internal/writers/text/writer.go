// Package text writes cleaned transcripts as flat text, one entry per line.
package text

import (
	"bufio"
	"io"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.TranscriptWriter = (*Writer)(nil)

// Writer produces "<speech>\n" per entry, or "<speaker> <time> <speech>\n"
// when metadata is requested.
type Writer struct{}

// New creates a new text writer.
func New() *Writer {
	return &Writer{}
}

// Format returns domain.FormatText.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatText
}

// Write serialises entries to out.
func (w *Writer) Write(out io.Writer, entries []domain.TranscriptEntry, opts driven.WriteOptions) error {
	bw := bufio.NewWriter(out)
	for _, e := range entries {
		if opts.Metadata {
			bw.WriteString(e.Speaker)
			bw.WriteByte(' ')
			bw.WriteString(e.Time)
			bw.WriteByte(' ')
		}
		bw.WriteString(e.Speech)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
