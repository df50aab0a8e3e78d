package driving

import (
	"context"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// RunDetail is a run together with its documents.
type RunDetail struct {
	Run       domain.RunRecord
	Documents []domain.DocumentRecord
}

// HistoryService reads the run ledger.
type HistoryService interface {
	// Recent returns the most recent runs, newest first, with their documents.
	Recent(ctx context.Context, limit int) ([]RunDetail, error)
}
