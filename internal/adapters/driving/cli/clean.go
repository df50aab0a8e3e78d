package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

var (
	cleanStartWith string
	cleanFormat    string
	cleanMetadata  bool
	cleanDryRun    bool
	cleanWatch     bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [input-dir]",
	Short: "Clean every new transcript under a directory",
	Long: `Walks the input directory (default: discovery.input_dir) and cleans every
transcript inside a participant directory (P001, P002, ...) that has no
cleaned output yet. Outputs are written next to the source as
Interview_Transcript_<participant>.<ext>; existing outputs are never
overwritten.

Formats:
  docx  - speaker and time headings above each speech paragraph (default)
  text  - one line per entry; --metadata adds "<speaker> <time>" in front
  xlsx  - Speaker, Time and Speech columns
  yaml  - a list of speaker/time/speech mappings

With --watch, tclean keeps running and cleans transcripts as they appear.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanStartWith, "start-with", "", "filename prefix of source transcripts")
	cleanCmd.Flags().StringVarP(&cleanFormat, "format", "f", "", "output format: docx, text, xlsx or yaml")
	cleanCmd.Flags().BoolVar(&cleanMetadata, "metadata", false, "prefix text lines with speaker and time")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "parse and report without writing")
	cleanCmd.Flags().BoolVarP(&cleanWatch, "watch", "w", false, "keep cleaning new transcripts until interrupted")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if cleaningService == nil {
		return fmt.Errorf("cleaning %w", errNotConfigured)
	}

	opts := driving.RunOptions{
		StartWith: cleanStartWith,
		Format:    domain.OutputFormat(cleanFormat),
		Metadata:  cleanMetadata,
		DryRun:    cleanDryRun,
	}
	if len(args) == 1 {
		opts.InputDir = args[0]
	}

	if cleanWatch {
		cmd.Println("Watching for transcripts. Press Ctrl+C to stop.")
		return cleaningService.Watch(cmd.Context(), opts, func(r domain.ProcessResult) {
			printResult(cmd, r)
		})
	}

	summary, err := cleaningService.Run(cmd.Context(), opts)
	if summary != nil {
		for i := range summary.Results {
			printResult(cmd, summary.Results[i])
		}
		printSummary(cmd, summary)
	}
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	if summary == nil {
		return nil
	}
	if failed := summary.Count(domain.StatusFailed); failed > 0 {
		return fmt.Errorf("%d transcript(s) failed", failed)
	}
	return nil
}

func printResult(cmd *cobra.Command, r domain.ProcessResult) {
	name := filepath.Base(r.Source)
	pid := r.ParticipantID
	if pid == "" {
		pid = "-"
	}

	switch r.Status {
	case domain.StatusWritten:
		cmd.Printf("  [written] %-5s %s -> %s (%s)\n", pid, name, filepath.Base(r.Output), entryCounts(r))
	case domain.StatusDryRun:
		cmd.Printf("  [dry run] %-5s %s (%s)\n", pid, name, entryCounts(r))
	case domain.StatusSkipped:
		cmd.Printf("  [skipped] %-5s %s: %s already exists\n", pid, name, filepath.Base(r.Output))
	case domain.StatusFailed:
		cmd.Printf("  [failed]  %-5s %s: %v\n", pid, name, r.Err)
	}
}

func entryCounts(r domain.ProcessResult) string {
	s := fmt.Sprintf("%d entries", len(r.Entries))
	if r.SkippedParagraphs > 0 {
		s += fmt.Sprintf(", %d paragraphs skipped", r.SkippedParagraphs)
	}
	return s
}

func printSummary(cmd *cobra.Command, s *domain.RunSummary) {
	if len(s.Results) == 0 {
		cmd.Printf("No transcripts found under %s\n", s.Root)
		return
	}
	cmd.Println()
	cmd.Printf("%d written, %d dry run, %d skipped, %d failed",
		s.Count(domain.StatusWritten), s.Count(domain.StatusDryRun),
		s.Count(domain.StatusSkipped), s.Count(domain.StatusFailed))
	if s.RunID != "" {
		cmd.Printf(" (run %s)", s.RunID)
	}
	cmd.Println()
}
