package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/logger"
	"github.com/custodia-labs/tclean/internal/writers/docx"
	"github.com/custodia-labs/tclean/internal/writers/text"
	"github.com/custodia-labs/tclean/internal/writers/xlsx"
	"github.com/custodia-labs/tclean/internal/writers/yamlout"
)

// Ensure Registry implements the interface.
var _ driven.WriterRegistry = (*Registry)(nil)

const (
	tempPattern = ".tclean-*.tmp"
	outputMode  = 0o644
)

// Registry maps output formats to writers.
type Registry struct {
	mu      sync.RWMutex
	writers map[domain.OutputFormat]driven.TranscriptWriter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{writers: make(map[domain.OutputFormat]driven.TranscriptWriter)}
}

// NewDefaultRegistry creates a registry with every built-in format.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(docx.New())
	r.Register(text.New())
	r.Register(xlsx.New())
	r.Register(yamlout.New())
	return r
}

// Register adds a writer, replacing any writer for the same format.
func (r *Registry) Register(w driven.TranscriptWriter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writers[w.Format()] = w
}

// Get returns the writer for a format.
func (r *Registry) Get(format domain.OutputFormat) (driven.TranscriptWriter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, format)
	}
	return w, nil
}

// Save serialises entries to path. The file appears complete or not at all.
func (r *Registry) Save(
	path string,
	format domain.OutputFormat,
	entries []domain.TranscriptEntry,
	opts driven.WriteOptions,
) (err error) {
	w, err := r.Get(format)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("%w: %s", domain.ErrOutputExists, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// The temp name is always removed; on success the output is a
		// second link to the same data.
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Debug("Cannot remove temp file %s: %v", tmpPath, rmErr)
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err := w.Write(buf, entries, opts); err != nil {
		tmp.Close()
		return fmt.Errorf("render %s: %w", format, err)
	}
	if err := buf.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(outputMode); err != nil {
		logger.Debug("Cannot chmod %s: %v", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return publish(tmpPath, path)
}

// publish makes tmpPath visible as path without replacing an existing file.
// A hard link fails atomically when path exists; filesystems without hard
// links fall back to a checked rename.
func publish(tmpPath, path string) error {
	err := os.Link(tmpPath, path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", domain.ErrOutputExists, path)
	}

	logger.Debug("Hard link unavailable (%v), renaming instead", err)
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("%w: %s", domain.ErrOutputExists, path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Load reads a cleaned output back into entries.
func (r *Registry) Load(path string) ([]domain.TranscriptEntry, error) {
	format, ok := domain.FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
	}
	w, err := r.Get(format)
	if err != nil {
		return nil, err
	}
	reader, ok := w.(driven.TranscriptReader)
	if !ok {
		return nil, fmt.Errorf("%w: %s outputs cannot be read back", domain.ErrUnsupportedType, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return reader.Read(f)
}
