package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change tclean settings.

Settings live in config.toml inside the configuration directory
($TCLEAN_HOME or ~/.tclean unless --config-dir is given).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting using its dot-notation key, for example:

  tclean settings set transcript.interviewer_name "Jane Doe"
  tclean settings set output.format yaml
  tclean settings set ledger.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the common settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Transcript]")
	cmd.Printf("  Interviewer: %s\n", settings.Transcript.InterviewerName)
	cmd.Printf("  Leading boundary: %d\n", settings.Transcript.LeadingBoundary)
	cmd.Printf("  Trailing boundary: %d\n", settings.Transcript.TrailingBoundary)
	cmd.Printf("  Timestamp policy: %s\n", settings.Transcript.TimestampPolicy)
	cmd.Println()

	cmd.Println("[Discovery]")
	cmd.Printf("  Input dir: %s\n", settings.Discovery.InputDir)
	cmd.Printf("  Start with: %s\n", settings.Discovery.StartWith)
	cmd.Printf("  Extension: %s\n", settings.Discovery.Extension)
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Format: %s\n", settings.Output.Format)
	cmd.Printf("  Metadata: %s\n", yesNo(settings.Output.Metadata))
	cmd.Printf("  Prefix: %s\n", settings.Output.Prefix)
	cmd.Println()

	cmd.Println("[Ledger]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.Ledger.Enabled))
	cmd.Println()

	cmd.Println("[Logging]")
	cmd.Printf("  Level: %s\n", settings.Logging.Level)
	cmd.Printf("  Format: %s\n", settings.Logging.Format)
	cmd.Println()

	if path := settingsService.Path(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}

	if unknown := settingsService.Unknown(); len(unknown) > 0 {
		cmd.Printf("Warning: unknown keys ignored: %s\n", strings.Join(unknown, ", "))
	}

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'tclean settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w\nValid keys: %s",
			key, err, strings.Join(settingsService.Keys(), ", "))
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}
	cmd.Println(settingsService.Path())
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("tclean Settings Wizard")
	cmd.Println("======================")
	cmd.Println("Press Enter to keep the value in brackets.")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Transcript
	cmd.Println("Step 1: Transcript")
	cmd.Println("------------------")
	steps := []struct {
		key     string
		prompt  string
		current string
	}{
		{services.KeyInterviewerName, "Interviewer speaker label", current.Transcript.InterviewerName},
		{services.KeyLeadingBoundary, "Front-matter paragraphs to drop",
			strconv.Itoa(current.Transcript.LeadingBoundary)},
		{services.KeyTrailingBoundary, "Footer paragraphs to drop",
			strconv.Itoa(current.Transcript.TrailingBoundary)},
	}
	for _, step := range steps {
		if err := promptSetting(cmd, reader, step.key, step.prompt, step.current); err != nil {
			return err
		}
	}
	cmd.Println()

	// Step 2: Discovery
	cmd.Println("Step 2: Discovery")
	cmd.Println("-----------------")
	if err := promptSetting(cmd, reader, services.KeyInputDir, "Input directory", current.Discovery.InputDir); err != nil {
		return err
	}
	if err := promptSetting(cmd, reader, services.KeyStartWith, "Transcript filename prefix",
		current.Discovery.StartWith); err != nil {
		return err
	}
	cmd.Println()

	// Step 3: Output format
	cmd.Println("Step 3: Output Format")
	cmd.Println("---------------------")
	formats := []domain.OutputFormat{domain.FormatDocx, domain.FormatText, domain.FormatXLSX, domain.FormatYAML}
	defaultIdx := 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f)
		if f == current.Output.Format {
			defaultIdx = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	idx := parseChoice(readLine(reader), len(formats), defaultIdx)
	if err := settingsService.Set(services.KeyOutputFormat, formats[idx-1].String()); err != nil {
		return fmt.Errorf("failed to set output format: %w", err)
	}
	cmd.Printf("Output format set to: %s\n\n", formats[idx-1])

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	updated, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := updated.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func promptSetting(cmd *cobra.Command, reader *bufio.Reader, key, prompt, current string) error {
	cmd.Printf("%s [%s]: ", prompt, current)
	value := readLine(reader)
	if value == "" {
		return nil
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
