// Package xlsx writes cleaned transcripts as a spreadsheet for coding.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// Ensure Writer implements the interfaces.
var (
	_ driven.TranscriptWriter = (*Writer)(nil)
	_ driven.TranscriptReader = (*Writer)(nil)
)

// SheetName is the worksheet holding the transcript.
const SheetName = "Transcript"

var header = []any{"Speaker", "Time", "Speech"}

// Writer produces one row per entry under a Speaker/Time/Speech header.
type Writer struct{}

// New creates a new spreadsheet writer.
func New() *Writer {
	return &Writer{}
}

// Format returns domain.FormatXLSX.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatXLSX
}

// Write serialises entries to out.
func (w *Writer) Write(out io.Writer, entries []domain.TranscriptEntry, _ driven.WriteOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Speaker, e.Time, e.Speech}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "B", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "C", "C", 100); err != nil {
		return err
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return f.Write(out)
}

// Read parses a spreadsheet written by Write. The header row is located by
// its column titles; rows with an empty speech cell are ignored.
func (w *Writer) Read(in io.Reader) ([]domain.TranscriptEntry, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet: %w", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", domain.ErrInvalidInput)
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if s == SheetName {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %w", domain.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return []domain.TranscriptEntry{}, nil
	}

	speakerIdx, timeIdx, speechIdx := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "speaker":
			speakerIdx = i
		case "time":
			timeIdx = i
		case "speech":
			speechIdx = i
		}
	}
	if speakerIdx < 0 || timeIdx < 0 || speechIdx < 0 {
		return nil, fmt.Errorf("%w: missing Speaker/Time/Speech header", domain.ErrInvalidInput)
	}

	entries := make([]domain.TranscriptEntry, 0, len(rows)-1)
	for _, r := range rows[1:] {
		speech := cellAt(r, speechIdx)
		if speech == "" {
			continue
		}
		entries = append(entries, domain.TranscriptEntry{
			Speaker: cellAt(r, speakerIdx),
			Time:    cellAt(r, timeIdx),
			Speech:  speech,
		})
	}
	return entries, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
