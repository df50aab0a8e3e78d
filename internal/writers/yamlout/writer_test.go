package yamlout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

func TestWriter_RoundTrip(t *testing.T) {
	entries := []domain.TranscriptEntry{
		{Speaker: "P003", Time: "00:01:05", Speech: "I think so: yes."},
		{Speaker: "Interviewer", Time: "00:01:10", Speech: "- Can you elaborate?"},
	}
	w := New()

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, entries, driven.WriteOptions{}))
	assert.True(t, strings.HasPrefix(buf.String(), "- speaker: P003\n"), buf.String())

	got, err := w.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestWriter_EmptyTranscript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Write(&buf, nil, driven.WriteOptions{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriter_Read(t *testing.T) {
	got, err := New().Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = New().Read(strings.NewReader("speaker: [unclosed"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, domain.FormatYAML, New().Format())
}
