// Package cli provides the cobra command tree for tclean.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tclean/internal/core/ports/driving"
	"github.com/custodia-labs/tclean/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services wired by the composition root.
var (
	cleaningService driving.CleaningService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	outputService   driving.OutputService
	closeServices   func() error
)

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services bundles everything the commands need.
type Services struct {
	Cleaning driving.CleaningService
	Settings driving.SettingsService
	History  driving.HistoryService
	Output   driving.OutputService

	// Close releases resources such as the ledger database. Optional.
	Close func() error
}

// Bootstrap builds the services once flags are parsed. configDir is the
// value of --config-dir, empty when not given.
type Bootstrap func(configDir string) (*Services, error)

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "tclean",
	Short: "Clean and anonymise interview transcripts",
	Long: `tclean turns raw interview transcripts into cleaned, anonymised ones.

Each paragraph of the form "<speaker> <MM:SS> <speech>" becomes an entry
attributed to the interviewer or to the participant id taken from the
transcript's P0xx directory. The candidate's name is redacted from the
speech and timestamps are normalised to HH:MM:SS.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default $TCLEAN_HOME or ~/.tclean)")
}

// SetVersion sets the version reported by `tclean version`.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that wires services after flag parsing.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices installs services directly.
func SetServices(s *Services) {
	cleaningService = s.Cleaning
	settingsService = s.Settings
	historyService = s.History
	outputService = s.Output
	closeServices = s.Close
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("Closing services: %v", cerr)
		}
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	if bootstrap != nil && cleaningService == nil {
		services, err := bootstrap(configDir)
		if err != nil {
			return err
		}
		SetServices(services)
	}
	if verbose {
		logger.SetVerbose(true)
	}
	return nil
}

var errNotConfigured = errors.New("service not configured")
