package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// Ensure LedgerStore implements the interface.
var _ driven.LedgerStore = (*LedgerStore)(nil)

// LedgerStore is an in-memory implementation of driven.LedgerStore.
// It is used when the SQLite ledger is disabled, and in tests.
type LedgerStore struct {
	mu    sync.RWMutex
	order []string
	runs  map[string]domain.RunRecord
	docs  map[string][]domain.DocumentRecord
}

// NewLedgerStore creates a new in-memory ledger.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		runs: make(map[string]domain.RunRecord),
		docs: make(map[string][]domain.DocumentRecord),
	}
}

// StartRun records a new run.
func (s *LedgerStore) StartRun(_ context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is empty", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[run.ID]; !ok {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

// FinishRun updates a run's counts and finish time.
func (s *LedgerStore) FinishRun(_ context.Context, run domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[run.ID]; !ok {
		return domain.ErrNotFound
	}
	s.runs[run.ID] = run
	return nil
}

// RecordDocument stores one document outcome.
func (s *LedgerStore) RecordDocument(_ context.Context, rec domain.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[rec.RunID]; !ok {
		return domain.ErrNotFound
	}
	s.docs[rec.RunID] = append(s.docs[rec.RunID], rec)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *LedgerStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.RunRecord, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		runs = append(runs, s.runs[s.order[i]])
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// ListDocuments returns the documents recorded for a run, in processing order.
func (s *LedgerStore) ListDocuments(_ context.Context, runID string) ([]domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.docs[runID]
	out := make([]domain.DocumentRecord, len(docs))
	copy(out, docs)
	return out, nil
}

// Close is a no-op for the memory store.
func (s *LedgerStore) Close() error {
	return nil
}
