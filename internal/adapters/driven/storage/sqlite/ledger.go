package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tclean/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// Ensure LedgerStore implements the interface.
var _ driven.LedgerStore = (*LedgerStore)(nil)

// DatabaseFile is the ledger file name inside the data directory.
const DatabaseFile = "ledger.db"

// LedgerStore is a SQLite implementation of driven.LedgerStore.
type LedgerStore struct {
	db   *sql.DB
	path string
}

// NewLedgerStore opens (creating if needed) the ledger in dataDir.
// If dataDir is empty, defaults to ~/.tclean/data.
func NewLedgerStore(dataDir string) (*LedgerStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tclean", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &LedgerStore{db: db, path: dbPath}

	if err := s.migrate(context.Background(), migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *LedgerStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *LedgerStore) Path() string {
	return s.path
}

// migrate applies every NNN_name.up.sql newer than the recorded version,
// each in its own transaction.
func (s *LedgerStore) migrate(ctx context.Context, fsys fs.FS) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(ctx, version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *LedgerStore) apply(ctx context.Context, version int, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		version, time.Now().UTC().Unix()); err != nil {
		return err
	}
	return tx.Commit()
}

// StartRun records a new run. Starting an existing ID replaces it.
func (s *LedgerStore) StartRun(ctx context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is empty", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, root, format, dry_run, started_at, finished_at, written, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			root = excluded.root,
			format = excluded.format,
			dry_run = excluded.dry_run,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			written = excluded.written,
			skipped = excluded.skipped,
			failed = excluded.failed
	`, run.ID, run.Root, run.Format, run.DryRun, toUnix(run.StartedAt), nullUnix(run.FinishedAt),
		run.Written, run.Skipped, run.Failed)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// FinishRun updates a run's counts and finish time.
func (s *LedgerStore) FinishRun(ctx context.Context, run domain.RunRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, written = ?, skipped = ?, failed = ?
		WHERE id = ?
	`, nullUnix(run.FinishedAt), run.Written, run.Skipped, run.Failed, run.ID)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecordDocument stores one document outcome.
func (s *LedgerStore) RecordDocument(ctx context.Context, rec domain.DocumentRecord) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM runs WHERE id = ?", rec.RunID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (run_id, source, output, participant_id, status, entries,
			skipped_paragraphs, error, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, rec.Source, rec.Output, rec.ParticipantID, string(rec.Status), rec.Entries,
		rec.SkippedParagraphs, rec.Error, toUnix(rec.ProcessedAt))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
func (s *LedgerStore) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, root, format, dry_run, started_at, finished_at, written, skipped, failed
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.RunRecord
		var startedAt int64
		var finishedAt sql.NullInt64
		if err := rows.Scan(&run.ID, &run.Root, &run.Format, &run.DryRun, &startedAt, &finishedAt,
			&run.Written, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt = fromUnix(startedAt)
		if finishedAt.Valid {
			run.FinishedAt = fromUnix(finishedAt.Int64)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// ListDocuments returns the documents recorded for a run, in processing order.
func (s *LedgerStore) ListDocuments(ctx context.Context, runID string) ([]domain.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, source, output, participant_id, status, entries, skipped_paragraphs,
			error, processed_at
		FROM documents
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.DocumentRecord{}
	for rows.Next() {
		var rec domain.DocumentRecord
		var status string
		var processedAt int64
		if err := rows.Scan(&rec.RunID, &rec.Source, &rec.Output, &rec.ParticipantID, &status,
			&rec.Entries, &rec.SkippedParagraphs, &rec.Error, &processedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		rec.Status = domain.ProcessStatus(status)
		rec.ProcessedAt = fromUnix(processedAt)
		docs = append(docs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Times are stored as Unix nanoseconds in UTC.
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixNano()
}

func nullUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UTC().UnixNano(), Valid: true}
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
