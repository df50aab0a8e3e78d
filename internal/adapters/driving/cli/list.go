package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

var listStartWith string

var listCmd = &cobra.Command{
	Use:   "list [input-dir]",
	Short: "List discovered transcripts",
	Long: `Lists the transcripts 'tclean clean' would pick up, with their participant
ids and whether a cleaned output already exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listStartWith, "start-with", "", "filename prefix of source transcripts")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if cleaningService == nil {
		return fmt.Errorf("cleaning %w", errNotConfigured)
	}

	opts := driving.RunOptions{StartWith: listStartWith}
	if len(args) == 1 {
		opts.InputDir = args[0]
	}

	candidates, err := cleaningService.Discover(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if len(candidates) == 0 {
		cmd.Println("No transcripts found.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTICIPANT\tSTATUS\tTRANSCRIPT")
	pending := 0
	for _, c := range candidates {
		status := "cleaned"
		if !c.OutputExists {
			status = "pending"
			pending++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Context.ParticipantID, status, c.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cmd.Printf("\n%d transcript(s), %d pending\n", len(candidates), pending)
	return nil
}
