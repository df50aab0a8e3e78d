package driving

import (
	"context"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// RunOptions tunes one batch run. Zero values fall back to settings.
type RunOptions struct {
	// InputDir overrides discovery.input_dir.
	InputDir string

	// StartWith overrides discovery.start_with.
	StartWith string

	// Format overrides output.format.
	Format domain.OutputFormat

	// Metadata forces the flat-text metadata prefix on.
	Metadata bool

	// DryRun processes transcripts without writing outputs.
	DryRun bool
}

// Candidate is a discovered transcript and its derived context.
type Candidate struct {
	// Path is the transcript path.
	Path string

	// Context is derived from Path.
	Context domain.DocumentContext

	// Output is where the cleaned transcript goes.
	Output string

	// OutputExists reports whether Output is already present.
	OutputExists bool
}

// CleaningService runs the transcript-cleaning pipeline.
type CleaningService interface {
	// Clean parses and normalises one transcript without writing anything.
	// Unreadable documents are reported in the result, not as an error.
	Clean(ctx context.Context, path string) domain.ProcessResult

	// Run walks the input directory and cleans every new transcript.
	// Per-file failures are part of the summary; the returned error is
	// reserved for failures of the walk itself or of the ledger.
	Run(ctx context.Context, opts RunOptions) (*domain.RunSummary, error)

	// Watch runs once, then keeps cleaning new or changed transcripts until
	// ctx is cancelled. onResult is called for every file handled, the
	// initial pass included. Cancellation is not an error.
	Watch(ctx context.Context, opts RunOptions, onResult func(domain.ProcessResult)) error

	// Discover lists transcript candidates under a root.
	Discover(ctx context.Context, opts RunOptions) ([]Candidate, error)
}
