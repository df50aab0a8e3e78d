package domain

import "time"

// RunRecord is a persisted batch run.
type RunRecord struct {
	// ID is the unique identifier for the run.
	ID string

	// Root is the walked input directory.
	Root string

	// Format is the output format used.
	Format string

	// DryRun marks runs that wrote nothing.
	DryRun bool

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended. Zero while running.
	FinishedAt time.Time

	// Written, Skipped and Failed are per-status document counts.
	Written int
	Skipped int
	Failed  int
}

// DocumentRecord is a persisted per-transcript outcome within a run.
type DocumentRecord struct {
	// RunID links to the owning RunRecord.
	RunID string

	// Source is the transcript path.
	Source string

	// Output is the cleaned output path.
	Output string

	// ParticipantID is the participant identifier.
	ParticipantID string

	// Status is the outcome.
	Status ProcessStatus

	// Entries is the number of entries produced.
	Entries int

	// SkippedParagraphs is the number of non-empty paragraphs dropped.
	SkippedParagraphs int

	// Error is the failure message, if any.
	Error string

	// ProcessedAt is when the transcript was handled.
	ProcessedAt time.Time
}

// NewDocumentRecord builds a ledger record from a process result.
func NewDocumentRecord(runID string, r ProcessResult, at time.Time) DocumentRecord {
	rec := DocumentRecord{
		RunID:             runID,
		Source:            r.Source,
		Output:            r.Output,
		ParticipantID:     r.ParticipantID,
		Status:            r.Status,
		Entries:           len(r.Entries),
		SkippedParagraphs: r.SkippedParagraphs,
		ProcessedAt:       at,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}
