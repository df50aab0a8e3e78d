package writers

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

func entries() []domain.TranscriptEntry {
	return []domain.TranscriptEntry{
		{Speaker: "P003", Time: "00:01:05", Speech: "I think so."},
		{Speaker: "Interviewer", Time: "00:01:10", Speech: "Can you elaborate?"},
	}
}

// failingWriter writes some bytes and then fails.
type failingWriter struct{}

func (failingWriter) Format() domain.OutputFormat { return domain.FormatText }

func (failingWriter) Write(w io.Writer, _ []domain.TranscriptEntry, _ driven.WriteOptions) error {
	_, _ = io.WriteString(w, "partial")
	return errors.New("boom")
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(des))
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	for _, f := range []domain.OutputFormat{domain.FormatDocx, domain.FormatText, domain.FormatXLSX, domain.FormatYAML} {
		w, err := r.Get(f)
		require.NoError(t, err)
		assert.Equal(t, f, w.Format())
	}

	_, err := r.Get("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Interview_Transcript_P003.txt")

	err := NewDefaultRegistry().Save(path, domain.FormatText, entries(), driven.WriteOptions{Metadata: true})

	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "P003 00:01:05 I think so.\nInterviewer 00:01:10 Can you elaborate?\n", string(content))
	assert.Equal(t, []string{"Interview_Transcript_P003.txt"}, listDir(t, dir))
}

func TestRegistry_Save_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Interview_Transcript_P003.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o600))

	err := NewDefaultRegistry().Save(path, domain.FormatText, entries(), driven.WriteOptions{})

	assert.ErrorIs(t, err, domain.ErrOutputExists)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestRegistry_Save_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Interview_Transcript_P003.txt")
	r := NewRegistry()
	r.Register(failingWriter{})

	err := r.Save(path, domain.FormatText, entries(), driven.WriteOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, listDir(t, dir))
}

func TestRegistry_Save_UnknownFormat(t *testing.T) {
	dir := t.TempDir()

	err := NewRegistry().Save(filepath.Join(dir, "x.pdf"), "pdf", entries(), driven.WriteOptions{})

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Empty(t, listDir(t, dir))
}

func TestRegistry_Save_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	err := NewDefaultRegistry().Save(path, domain.FormatText, entries(), driven.WriteOptions{})

	assert.Error(t, err)
}

func TestRegistry_SaveAndLoad(t *testing.T) {
	r := NewDefaultRegistry()

	for _, f := range []domain.OutputFormat{domain.FormatDocx, domain.FormatXLSX, domain.FormatYAML} {
		t.Run(f.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Interview_Transcript_P003"+f.Extension())
			require.NoError(t, r.Save(path, f, entries(), driven.WriteOptions{}))

			got, err := r.Load(path)

			require.NoError(t, err)
			assert.Equal(t, entries(), got)
		})
	}
}

func TestRegistry_Load_Unsupported(t *testing.T) {
	r := NewDefaultRegistry()
	dir := t.TempDir()
	textPath := filepath.Join(dir, "out.txt")
	require.NoError(t, r.Save(textPath, domain.FormatText, entries(), driven.WriteOptions{}))

	_, err := r.Load(textPath)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = r.Load(filepath.Join(dir, "out.pdf"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
