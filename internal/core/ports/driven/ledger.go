package driven

import (
	"context"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// LedgerStore persists batch runs and their per-document outcomes.
type LedgerStore interface {
	// StartRun records a new run.
	StartRun(ctx context.Context, run domain.RunRecord) error

	// FinishRun updates a run's counts and finish time.
	FinishRun(ctx context.Context, run domain.RunRecord) error

	// RecordDocument stores one document outcome.
	RecordDocument(ctx context.Context, rec domain.DocumentRecord) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// ListDocuments returns the documents recorded for a run, in processing order.
	ListDocuments(ctx context.Context, runID string) ([]domain.DocumentRecord, error)

	// Close releases resources.
	Close() error
}
