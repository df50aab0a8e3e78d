package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/services"
)

var (
	historyLimit   int
	historyDetails bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent cleaning runs",
	Long:  `Lists recent runs from the ledger, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", services.DefaultHistoryLimit, "maximum number of runs")
	historyCmd.Flags().BoolVarP(&historyDetails, "documents", "d", false, "show per-document outcomes")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return fmt.Errorf("history %w", errNotConfigured)
	}

	runs, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, detail := range runs {
		run := detail.Run
		mode := run.Format
		if run.DryRun {
			mode += ", dry run"
		}
		cmd.Printf("%s  %s  %s (%s)\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.ID, run.Root, mode)
		cmd.Printf("    %d written, %d skipped, %d failed%s\n", run.Written, run.Skipped, run.Failed, duration(run))

		if historyDetails {
			for _, doc := range detail.Documents {
				printDocument(cmd, doc)
			}
		}
	}

	return nil
}

func duration(run domain.RunRecord) string {
	if run.FinishedAt.IsZero() {
		return ", unfinished"
	}
	return fmt.Sprintf(" in %s", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
}

func printDocument(cmd *cobra.Command, doc domain.DocumentRecord) {
	line := fmt.Sprintf("      %-8s %s", doc.Status, filepath.Base(doc.Source))
	if doc.Entries > 0 {
		line += fmt.Sprintf(" (%d entries)", doc.Entries)
	}
	if doc.Error != "" {
		line += ": " + doc.Error
	}
	cmd.Println(line)
}
