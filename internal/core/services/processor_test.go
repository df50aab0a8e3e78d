package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// stubRegistry returns fixed paragraphs for every document.
type stubRegistry struct {
	paragraphs []string
	err        error
	seen       []*domain.RawDocument
}

func (r *stubRegistry) Paragraphs(_ context.Context, raw *domain.RawDocument) ([]string, error) {
	r.seen = append(r.seen, raw)
	if r.err != nil {
		return nil, r.err
	}
	return r.paragraphs, nil
}

func (r *stubRegistry) Register(driven.Normaliser) {}

func (r *stubRegistry) SupportedMIMETypes() []string {
	return []string{domain.MIMEDocx, domain.MIMEText}
}

func frontMatter() []string {
	return []string{
		"Interview_ Social and Cultural Observations",
		"March 3, 2024, 10:00AM",
		"41m 10s",
		"",
	}
}

func withBoundaries(body ...string) []string {
	paragraphs := append(frontMatter(), body...)
	return append(paragraphs, "Transcription ended after 00:41:10")
}

func defaultTranscriptSettings() domain.TranscriptSettings {
	return domain.DefaultSettings().Transcript
}

func TestProcessor_EndToEndScenario(t *testing.T) {
	registry := &stubRegistry{paragraphs: withBoundaries(
		"Jordan Lee 1:05 I think so.",
		"Hoorad Abootalebi 1:10 Can you elaborate?",
	)}
	p := NewProcessor(registry, defaultTranscriptSettings())

	entries, skipped, err := p.ProcessParagraphs("test", registry.paragraphs, testContext())

	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []domain.TranscriptEntry{
		{Speaker: "P003", Time: "00:01:05", Speech: "I think so."},
		{Speaker: "Interviewer", Time: "00:01:10", Speech: "Can you elaborate?"},
	}, entries)
}

func TestProcessor_BoundariesDroppedUnconditionally(t *testing.T) {
	// Parsable lines inside the boundaries must not become entries.
	paragraphs := []string{
		"Jordan Lee 0:01 front one",
		"Jordan Lee 0:02 front two",
		"Jordan Lee 0:03 front three",
		"Jordan Lee 0:04 front four",
		"Jordan Lee 0:05 body",
		"Jordan Lee 0:06 footer",
	}
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	entries, _, err := p.ProcessParagraphs("test", paragraphs, testContext())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "body", entries[0].Speech)
}

func TestProcessor_TooFewParagraphs(t *testing.T) {
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	for n := 0; n <= 5; n++ {
		paragraphs := make([]string, n)
		for i := range paragraphs {
			paragraphs[i] = "Jordan Lee 0:01 hi"
		}
		entries, skipped, err := p.ProcessParagraphs("test", paragraphs, testContext())
		require.NoError(t, err)
		assert.Empty(t, entries, "n=%d", n)
		assert.Zero(t, skipped)
	}
}

func TestProcessor_CustomBoundaries(t *testing.T) {
	settings := defaultTranscriptSettings()
	settings.LeadingBoundary = 0
	settings.TrailingBoundary = 0
	p := NewProcessor(&stubRegistry{}, settings)

	entries, _, err := p.ProcessParagraphs("test", []string{"Jordan Lee 0:01 only"}, testContext())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "only", entries[0].Speech)
}

func TestProcessor_EmptyParagraphsSkippedSilently(t *testing.T) {
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	entries, skipped, err := p.ProcessParagraphs("test", withBoundaries(
		"",
		"   ",
		"Jordan Lee 1:05 I think so.",
		"\t\n",
	), testContext())

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Zero(t, skipped)
}

func TestProcessor_UnparsableParagraphDecrementsCountByOne(t *testing.T) {
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	matching, _, err := p.ProcessParagraphs("test", withBoundaries(
		"Jordan Lee 1:05 I think so.",
		"Jordan Lee 1:07 More thoughts.",
		"Hoorad Abootalebi 1:10 Can you elaborate?",
	), testContext())
	require.NoError(t, err)

	broken, skipped, err := p.ProcessParagraphs("test", withBoundaries(
		"Jordan Lee 1:05 I think so.",
		"Jordan Lee More thoughts without a timestamp.",
		"Hoorad Abootalebi 1:10 Can you elaborate?",
	), testContext())
	require.NoError(t, err)

	assert.Equal(t, len(matching)-1, len(broken))
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "I think so.", broken[0].Speech)
	assert.Equal(t, "Can you elaborate?", broken[1].Speech)
}

func TestProcessor_PreservesOrder(t *testing.T) {
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	entries, _, err := p.ProcessParagraphs("test", withBoundaries(
		"Jordan Lee 0:30 third by time",
		"Hoorad Abootalebi 0:10 first by time",
		"Jordan Lee 0:20 second by time",
	), testContext())

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third by time", entries[0].Speech)
	assert.Equal(t, "first by time", entries[1].Speech)
	assert.Equal(t, "second by time", entries[2].Speech)
}

// looseParse accepts any "<speaker> <time> <speech>" line so that
// timestamps the real parser would reject reach the normaliser.
func looseParse(text string) (domain.Utterance, bool) {
	parts := strings.SplitN(text, " ", 3)
	if len(parts) != 3 {
		return domain.Utterance{}, false
	}
	return domain.Utterance{SpeakerLabel: parts[0], TimestampRaw: parts[1], SpeechRaw: parts[2]}, true
}

func TestProcessor_TimestampPolicy(t *testing.T) {
	body := withBoundaries(
		"Jordan 1:05 fine",
		"Jordan 1:2:3:4 four parts",
		"Jordan 1:10 also fine",
	)

	t.Run("skip drops only the entry", func(t *testing.T) {
		p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())
		p.parse = looseParse

		entries, skipped, err := p.ProcessParagraphs("test", body, testContext())

		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		require.Len(t, entries, 2)
		assert.Equal(t, "00:01:05", entries[0].Time)
		assert.Equal(t, "00:01:10", entries[1].Time)
	})

	t.Run("abort drops the document", func(t *testing.T) {
		settings := defaultTranscriptSettings()
		settings.TimestampPolicy = domain.TimestampAbort
		p := NewProcessor(&stubRegistry{}, settings)
		p.parse = looseParse

		entries, _, err := p.ProcessParagraphs("test", body, testContext())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTimestampFormat)
		assert.Contains(t, err.Error(), "paragraph 6")
		assert.Nil(t, entries)
	})
}

func TestProcessor_ParserRejectsWhatNormaliserRejects(t *testing.T) {
	// With the real parser, odd timestamps never reach the normaliser.
	settings := defaultTranscriptSettings()
	settings.TimestampPolicy = domain.TimestampAbort
	p := NewProcessor(&stubRegistry{}, settings)

	entries, skipped, err := p.ProcessParagraphs("test", withBoundaries(
		"Jordan Lee 1:05 fine",
		"Jordan Lee 1:2:3:4 never matches the parser",
		"Jordan Lee 123:45 not a timestamp shape either",
		"Jordan Lee 1:10 also fine",
	), testContext())

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, skipped)
}

func writeTranscript(t *testing.T, root, participantDir, name string) string {
	t.Helper()
	dir := filepath.Join(root, participantDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
	return path
}

func TestProcessor_ProcessFile(t *testing.T) {
	path := writeTranscript(t, t.TempDir(), "P003", "Interview_ SCOPE-Jordan Lee.docx")
	registry := &stubRegistry{paragraphs: withBoundaries(
		"Jordan Lee 1:05 Call me Jordan.",
		"Hoorad Abootalebi 1:10 Can you elaborate?",
	)}
	p := NewProcessor(registry, defaultTranscriptSettings())

	result := p.ProcessFile(context.Background(), path)

	require.NoError(t, result.Err)
	assert.NotEqual(t, domain.StatusFailed, result.Status)
	assert.Equal(t, "P003", result.ParticipantID)
	assert.Equal(t, path, result.Source)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Call me P003.", result.Entries[0].Speech)

	require.Len(t, registry.seen, 1)
	assert.Equal(t, domain.MIMEDocx, registry.seen[0].MIMEType)
	assert.Equal(t, []byte("content"), registry.seen[0].Content)
}

func TestProcessor_ProcessFile_Unopenable(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "P003", "Interview-Jordan.docx")
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	result := p.ProcessFile(context.Background(), path)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrDocumentUnreadable)
	assert.Empty(t, result.Entries)
	assert.Equal(t, "P003", result.ParticipantID)
}

func TestProcessor_ProcessFile_CorruptDocument(t *testing.T) {
	path := writeTranscript(t, t.TempDir(), "P004", "Interview-Sam.docx")
	p := NewProcessor(&stubRegistry{err: errors.New("zip: not a valid zip file")}, defaultTranscriptSettings())

	result := p.ProcessFile(context.Background(), path)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrDocumentUnreadable)
	assert.Empty(t, result.Entries)
}

func TestProcessor_ProcessFile_UnsupportedType(t *testing.T) {
	path := writeTranscript(t, t.TempDir(), "P004", "Interview-Sam.pdf")
	p := NewProcessor(&stubRegistry{err: domain.ErrUnsupportedType}, defaultTranscriptSettings())

	result := p.ProcessFile(context.Background(), path)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrUnsupportedType)
}

func TestProcessor_ProcessFile_NoParticipant(t *testing.T) {
	path := writeTranscript(t, t.TempDir(), "misc", "Interview-Sam.docx")
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	result := p.ProcessFile(context.Background(), path)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrNoParticipant)
}

func TestProcessor_Process_NilDocument(t *testing.T) {
	p := NewProcessor(&stubRegistry{}, defaultTranscriptSettings())

	_, _, err := p.Process(context.Background(), nil, testContext())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
