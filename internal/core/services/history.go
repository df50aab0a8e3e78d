package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of runs shown when no limit is given.
const DefaultHistoryLimit = 10

// HistoryService reads past runs from the ledger.
type HistoryService struct {
	ledger driven.LedgerStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(ledger driven.LedgerStore) *HistoryService {
	return &HistoryService{ledger: ledger}
}

// Recent returns the most recent runs, newest first, with their documents.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]driving.RunDetail, error) {
	if s.ledger == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	runs, err := s.ledger.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	details := make([]driving.RunDetail, 0, len(runs))
	for _, run := range runs {
		docs, err := s.ledger.ListDocuments(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("list documents for run %s: %w", run.ID, err)
		}
		details = append(details, driving.RunDetail{Run: run, Documents: docs})
	}
	return details, nil
}
