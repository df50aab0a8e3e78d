package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tclean/internal/adapters/driving/tui"
	"github.com/custodia-labs/tclean/internal/core/domain"
)

// Swappable in tests.
var (
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	runViewer  = func(title string, entries []domain.TranscriptEntry) error {
		return tui.Run(title, entries)
	}
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Page through a transcript in the terminal",
	Long: `Opens a source transcript or a cleaned output in an interactive pager.

Source transcripts are cleaned on the fly; cleaned outputs
(Interview_Transcript_*.docx, .xlsx, .yaml, .txt) are read back as written.
When stdout is not a terminal the entries are printed as text instead.

Controls:
  ↑/k, ↓/j  - Scroll
  n, p      - Next / previous entry
  f         - Cycle speaker filter
  ?         - Toggle help
  q         - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if cleaningService == nil || outputService == nil {
		return fmt.Errorf("cleaning %w", errNotConfigured)
	}

	path := args[0]
	entries, err := loadEntries(cmd, path)
	if err != nil {
		return err
	}

	if !isTerminal() {
		return outputService.Render(cmd.OutOrStdout(), domain.FormatText, entries, true)
	}
	return runViewer(path, entries)
}

func loadEntries(cmd *cobra.Command, path string) ([]domain.TranscriptEntry, error) {
	if outputService.IsOutput(path) {
		entries, err := outputService.Load(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return entries, nil
	}

	result := cleaningService.Clean(cmd.Context(), path)
	if result.Status == domain.StatusFailed {
		return nil, fmt.Errorf("clean %s: %w", path, result.Err)
	}
	return result.Entries, nil
}
