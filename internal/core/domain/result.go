package domain

import "time"

// ProcessStatus describes what happened to one transcript in a batch.
type ProcessStatus string

// Possible process outcomes.
const (
	// StatusWritten means entries were produced and the output was saved.
	StatusWritten ProcessStatus = "written"

	// StatusSkipped means the output already existed.
	StatusSkipped ProcessStatus = "skipped"

	// StatusDryRun means entries were produced but nothing was written.
	StatusDryRun ProcessStatus = "dry_run"

	// StatusFailed means the document could not be processed.
	StatusFailed ProcessStatus = "failed"
)

// String returns the string representation.
func (s ProcessStatus) String() string {
	return string(s)
}

// ProcessResult is the outcome of running one transcript through the pipeline.
type ProcessResult struct {
	// Source is the transcript path.
	Source string

	// Output is the cleaned output path (set even when skipped).
	Output string

	// ParticipantID is the participant the transcript belongs to.
	ParticipantID string

	// Entries are the cleaned entries in document order.
	Entries []TranscriptEntry

	// SkippedParagraphs counts non-empty paragraphs that produced no entry.
	SkippedParagraphs int

	// Status is the outcome.
	Status ProcessStatus

	// Err is set when Status is StatusFailed.
	Err error
}

// RunSummary aggregates the results of one batch run.
type RunSummary struct {
	// RunID identifies the run in the ledger.
	RunID string

	// Root is the walked input directory.
	Root string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended.
	FinishedAt time.Time

	// Results holds one entry per discovered transcript, in walk order.
	Results []ProcessResult
}

// Count returns the number of results with the given status.
func (s *RunSummary) Count(status ProcessStatus) int {
	n := 0
	for i := range s.Results {
		if s.Results[i].Status == status {
			n++
		}
	}
	return n
}
