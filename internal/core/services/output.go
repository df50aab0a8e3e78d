package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

// Ensure OutputService implements the interface.
var _ driving.OutputService = (*OutputService)(nil)

// OutputService renders entries through the writer registry.
type OutputService struct {
	writers driven.WriterRegistry
	prefix  string
}

// NewOutputService creates an output service. prefix is the cleaned output
// filename prefix (output.prefix).
func NewOutputService(writers driven.WriterRegistry, prefix string) *OutputService {
	return &OutputService{writers: writers, prefix: prefix}
}

// Render serialises entries to w in the given format.
func (s *OutputService) Render(
	w io.Writer,
	format domain.OutputFormat,
	entries []domain.TranscriptEntry,
	metadata bool,
) error {
	writer, err := s.writers.Get(format)
	if err != nil {
		return err
	}
	if err := writer.Write(w, entries, driven.WriteOptions{Metadata: metadata}); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

// Load reads a cleaned output file.
func (s *OutputService) Load(path string) ([]domain.TranscriptEntry, error) {
	return s.writers.Load(path)
}

// IsOutput reports whether the file name carries the output prefix and a
// known output extension.
func (s *OutputService) IsOutput(path string) bool {
	name := filepath.Base(path)
	if s.prefix == "" || !strings.HasPrefix(name, s.prefix) {
		return false
	}
	_, ok := domain.FormatForPath(name)
	return ok
}
