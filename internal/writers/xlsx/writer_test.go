package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

func TestWriter_Write(t *testing.T) {
	entries := []domain.TranscriptEntry{
		{Speaker: "P003", Time: "00:01:05", Speech: "I think so."},
		{Speaker: "Interviewer", Time: "00:01:10", Speech: "Can you elaborate?"},
	}

	var buf bytes.Buffer
	require.NoError(t, New().Write(&buf, entries, driven.WriteOptions{}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Speaker", "Time", "Speech"},
		{"P003", "00:01:05", "I think so."},
		{"Interviewer", "00:01:10", "Can you elaborate?"},
	}, rows)
}

func TestWriter_RoundTrip(t *testing.T) {
	entries := []domain.TranscriptEntry{
		{Speaker: "P007", Time: "01:02:03", Speech: "=not a formula"},
	}
	w := New()

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, entries, driven.WriteOptions{}))

	got, err := w.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestWriter_Read_MissingHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "When"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := New().Read(&buf)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriter_Read_NotASpreadsheet(t *testing.T) {
	_, err := New().Read(bytes.NewReader([]byte("nope")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.FormatXLSX, New().Format())
}
