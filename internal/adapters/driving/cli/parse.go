package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

var (
	parseFormat   string
	parseMetadata bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the cleaned entries of one transcript",
	Long: `Cleans a single transcript and prints the entries instead of writing an
output file. The transcript must sit inside a participant directory so the
participant id can be derived.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", string(domain.FormatText), "output format: text or yaml")
	parseCmd.Flags().BoolVar(&parseMetadata, "metadata", true, "prefix text lines with speaker and time")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if cleaningService == nil || outputService == nil {
		return fmt.Errorf("cleaning %w", errNotConfigured)
	}

	format := domain.OutputFormat(parseFormat)
	switch format {
	case domain.FormatText, domain.FormatYAML:
	case domain.FormatDocx, domain.FormatXLSX:
		return fmt.Errorf("%s is a binary format; use 'tclean clean --format %s' instead", format, format)
	default:
		return fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, parseFormat)
	}

	result := cleaningService.Clean(cmd.Context(), args[0])
	if result.Status == domain.StatusFailed {
		return fmt.Errorf("parse %s: %w", args[0], result.Err)
	}

	return outputService.Render(cmd.OutOrStdout(), format, result.Entries, parseMetadata)
}
