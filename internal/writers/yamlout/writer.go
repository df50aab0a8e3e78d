// Package yamlout writes cleaned transcripts as a YAML list.
package yamlout

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// Ensure Writer implements the interfaces.
var (
	_ driven.TranscriptWriter = (*Writer)(nil)
	_ driven.TranscriptReader = (*Writer)(nil)
)

// Writer produces a sequence of {speaker, time, speech} mappings.
type Writer struct{}

// New creates a new YAML writer.
func New() *Writer {
	return &Writer{}
}

// Format returns domain.FormatYAML.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatYAML
}

// Write serialises entries to out. An empty transcript is written as [].
func (w *Writer) Write(out io.Writer, entries []domain.TranscriptEntry, _ driven.WriteOptions) error {
	if entries == nil {
		entries = []domain.TranscriptEntry{}
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Read parses a YAML transcript.
func (w *Writer) Read(in io.Reader) ([]domain.TranscriptEntry, error) {
	var entries []domain.TranscriptEntry
	if err := yaml.NewDecoder(in).Decode(&entries); err != nil {
		if err == io.EOF {
			return []domain.TranscriptEntry{}, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return entries, nil
}
