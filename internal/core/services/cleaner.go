package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
	"github.com/custodia-labs/tclean/internal/logger"
)

// Ensure BatchRunner implements the interface.
var _ driving.CleaningService = (*BatchRunner)(nil)

// BatchRunner walks an input directory and cleans every transcript that has
// no output yet. Files are handled one at a time, start to finish.
type BatchRunner struct {
	settings  domain.Settings
	factory   driven.ConnectorFactory
	processor *Processor
	writers   driven.WriterRegistry
	ledger    driven.LedgerStore
	newRunID  func() string
	now       func() time.Time
}

// NewBatchRunner creates a batch runner.
// The ledger is optional - if nil, runs are not recorded.
func NewBatchRunner(
	settings domain.Settings,
	factory driven.ConnectorFactory,
	processor *Processor,
	writers driven.WriterRegistry,
	ledger driven.LedgerStore,
	newRunID func() string,
) *BatchRunner {
	return &BatchRunner{
		settings:  settings,
		factory:   factory,
		processor: processor,
		writers:   writers,
		ledger:    ledger,
		newRunID:  newRunID,
		now:       time.Now,
	}
}

// runPlan is RunOptions with settings defaults applied.
type runPlan struct {
	root     string
	filter   domain.DiscoveryFilter
	settings domain.Settings
	opts     driven.WriteOptions
	dryRun   bool
}

func (b *BatchRunner) plan(opts driving.RunOptions) (runPlan, error) {
	s := b.settings
	if opts.InputDir != "" {
		s.Discovery.InputDir = opts.InputDir
	}
	if opts.StartWith != "" {
		s.Discovery.StartWith = opts.StartWith
	}
	if opts.Format != "" {
		s.Output.Format = opts.Format
	}
	if opts.Metadata {
		s.Output.Metadata = true
	}
	if !s.Output.Format.IsValid() {
		return runPlan{}, fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, s.Output.Format)
	}

	return runPlan{
		root: s.Discovery.InputDir,
		filter: domain.DiscoveryFilter{
			StartWith:     s.Discovery.StartWith,
			Extension:     s.Discovery.Extension,
			ExcludePrefix: s.Output.Prefix,
		},
		settings: s,
		opts:     driven.WriteOptions{Metadata: s.Output.Metadata},
		dryRun:   opts.DryRun,
	}, nil
}

// Clean parses and normalises one transcript without writing anything.
func (b *BatchRunner) Clean(ctx context.Context, path string) domain.ProcessResult {
	result := b.processor.ProcessFile(ctx, path)
	if result.ParticipantID != "" {
		result.Output = filepath.Join(filepath.Dir(path), b.settings.OutputName(result.ParticipantID))
	}
	if result.Status == domain.StatusFailed {
		return result
	}
	result.Status = domain.StatusDryRun
	return result
}

// Run walks the input directory and cleans every new transcript.
func (b *BatchRunner) Run(ctx context.Context, opts driving.RunOptions) (*domain.RunSummary, error) {
	p, err := b.plan(opts)
	if err != nil {
		return nil, err
	}

	connector, err := b.open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer connector.Close()

	return b.run(ctx, connector, p, nil)
}

// Watch runs once, then cleans transcripts as they appear or change.
func (b *BatchRunner) Watch(
	ctx context.Context,
	opts driving.RunOptions,
	onResult func(domain.ProcessResult),
) error {
	p, err := b.plan(opts)
	if err != nil {
		return err
	}

	connector, err := b.open(ctx, p)
	if err != nil {
		return err
	}
	defer connector.Close()

	// Subscribe before the initial pass so files created during it are seen.
	changes, err := connector.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", p.root, err)
	}

	if _, err := b.run(ctx, connector, p, onResult); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	logger.Info("Watching %s for new transcripts", p.root)

	summary := b.startRun(ctx, p)
	defer b.finishRun(ctx, p, summary)

	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if change.Type == domain.ChangeDeleted {
				logger.Debug("Ignoring removal of %s", change.Document.URI)
				continue
			}

			result, isCandidate := b.handle(ctx, change.Document.URI, p)
			if !isCandidate {
				continue
			}
			b.record(ctx, summary, result)
			if onResult != nil {
				onResult(result)
			}
		}
	}
}

// Discover lists transcript candidates under the input directory.
func (b *BatchRunner) Discover(ctx context.Context, opts driving.RunOptions) ([]driving.Candidate, error) {
	p, err := b.plan(opts)
	if err != nil {
		return nil, err
	}

	connector, err := b.open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer connector.Close()

	var candidates []driving.Candidate
	walkErr := walk(ctx, connector, func(doc domain.RawDocument) {
		docCtx, err := DeriveContext(doc.URI, p.settings.Transcript.InterviewerName)
		if err != nil {
			logger.Debug("Not a participant transcript: %s", doc.URI)
			return
		}
		output := outputPath(doc.URI, p.settings, docCtx.ParticipantID)
		candidates = append(candidates, driving.Candidate{
			Path:         doc.URI,
			Context:      docCtx,
			Output:       output,
			OutputExists: exists(output),
		})
	})

	return candidates, walkErr
}

func (b *BatchRunner) open(ctx context.Context, p runPlan) (driven.Connector, error) {
	if b.factory == nil {
		return nil, fmt.Errorf("create connector: connector factory not configured")
	}
	connector, err := b.factory.Create(p.root, p.filter)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	if err := connector.Validate(ctx); err != nil {
		connector.Close()
		return nil, fmt.Errorf("input directory %s: %w", p.root, err)
	}
	return connector, nil
}

// run performs one sequential pass over the connector's documents.
func (b *BatchRunner) run(
	ctx context.Context,
	connector driven.Connector,
	p runPlan,
	onResult func(domain.ProcessResult),
) (*domain.RunSummary, error) {
	summary := b.startRun(ctx, p)
	logger.Info("Cleaning transcripts under %s", p.root)

	walkErr := walk(ctx, connector, func(doc domain.RawDocument) {
		result, isCandidate := b.handle(ctx, doc.URI, p)
		if !isCandidate {
			return
		}
		b.record(ctx, summary, result)
		if onResult != nil {
			onResult(result)
		}
	})

	ledgerErr := b.finishRun(ctx, p, summary)

	logger.Info("Run complete: %d written, %d skipped, %d failed",
		summary.Count(domain.StatusWritten)+summary.Count(domain.StatusDryRun),
		summary.Count(domain.StatusSkipped),
		summary.Count(domain.StatusFailed))

	return summary, errors.Join(walkErr, ledgerErr)
}

// handle processes one transcript. It reports false when the path does not
// belong to a participant directory and so is not a transcript at all.
func (b *BatchRunner) handle(ctx context.Context, path string, p runPlan) (domain.ProcessResult, bool) {
	docCtx, err := DeriveContext(path, p.settings.Transcript.InterviewerName)
	if err != nil {
		logger.Debug("Not a participant transcript: %s", path)
		return domain.ProcessResult{}, false
	}

	output := outputPath(path, p.settings, docCtx.ParticipantID)
	if exists(output) {
		logger.Info("Output already exists, skipping: %s", output)
		return domain.ProcessResult{
			Source:        path,
			Output:        output,
			ParticipantID: docCtx.ParticipantID,
			Status:        domain.StatusSkipped,
		}, true
	}

	result := b.processor.ProcessFile(ctx, path)
	result.Output = output
	if result.Status == domain.StatusFailed {
		return result, true
	}
	if len(result.Entries) == 0 {
		logger.Warn("No entries found in %s", path)
		return failed(result, domain.ErrNoEntries), true
	}

	if p.dryRun {
		logger.Info("Dry run: %d entries from %s", len(result.Entries), path)
		result.Status = domain.StatusDryRun
		return result, true
	}

	err = b.writers.Save(output, p.settings.Output.Format, result.Entries, p.opts)
	switch {
	case errors.Is(err, domain.ErrOutputExists):
		logger.Info("Output already exists, skipping: %s", output)
		result.Status = domain.StatusSkipped
		return result, true
	case err != nil:
		logger.Error("Cannot write %s: %v", output, err)
		return failed(result, fmt.Errorf("write %s: %w", output, err)), true
	}

	logger.Info("Saved %d entries to %s", len(result.Entries), output)
	result.Status = domain.StatusWritten
	return result, true
}

func (b *BatchRunner) startRun(ctx context.Context, p runPlan) *domain.RunSummary {
	summary := &domain.RunSummary{
		RunID:     b.newRunID(),
		Root:      p.root,
		StartedAt: b.now(),
	}
	if b.ledger == nil {
		return summary
	}
	if err := b.ledger.StartRun(ctx, b.runRecord(p, summary)); err != nil {
		logger.Warn("Cannot record run %s: %v", summary.RunID, err)
	}
	return summary
}

func (b *BatchRunner) record(ctx context.Context, summary *domain.RunSummary, result domain.ProcessResult) {
	summary.Results = append(summary.Results, result)
	if b.ledger == nil {
		return
	}
	rec := domain.NewDocumentRecord(summary.RunID, result, b.now())
	if err := b.ledger.RecordDocument(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("Cannot record %s: %v", result.Source, err)
	}
}

func (b *BatchRunner) finishRun(ctx context.Context, p runPlan, summary *domain.RunSummary) error {
	summary.FinishedAt = b.now()
	if b.ledger == nil {
		return nil
	}
	if err := b.ledger.FinishRun(context.WithoutCancel(ctx), b.runRecord(p, summary)); err != nil {
		return fmt.Errorf("finish run %s: %w", summary.RunID, err)
	}
	return nil
}

func (b *BatchRunner) runRecord(p runPlan, summary *domain.RunSummary) domain.RunRecord {
	return domain.RunRecord{
		ID:         summary.RunID,
		Root:       summary.Root,
		Format:     p.settings.Output.Format.String(),
		DryRun:     p.dryRun,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Written:    summary.Count(domain.StatusWritten) + summary.Count(domain.StatusDryRun),
		Skipped:    summary.Count(domain.StatusSkipped),
		Failed:     summary.Count(domain.StatusFailed),
	}
}

// walk drains the connector's channels, calling fn for each document in
// order. Walk errors are logged and collected; they do not stop the walk.
func walk(ctx context.Context, connector driven.Connector, fn func(domain.RawDocument)) error {
	docsCh, errsCh := connector.Walk(ctx)
	var errs []error

	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			logger.Warn("Walk error: %v", err)
			errs = append(errs, err)

		case doc, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			fn(doc)
		}
	}

	return errors.Join(errs...)
}

func outputPath(source string, s domain.Settings, participantID string) string {
	return filepath.Join(filepath.Dir(source), s.OutputName(participantID))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
