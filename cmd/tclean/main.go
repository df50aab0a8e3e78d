// Command tclean cleans and anonymises interview transcripts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/tclean/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tclean/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tclean/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tclean/internal/adapters/driving/cli"
	"github.com/custodia-labs/tclean/internal/connectors/filesystem"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/core/services"
	"github.com/custodia-labs/tclean/internal/logger"
	"github.com/custodia-labs/tclean/internal/normalisers"
	"github.com/custodia-labs/tclean/internal/writers"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// Environment overrides for logging.
const (
	envLogLevel  = "TCLEAN_LOG_LEVEL"
	envLogFormat = "TCLEAN_LOG_FORMAT"
)

func main() {
	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters into services.
func bootstrap(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	configureLogging(settings.Logging.Level, settings.Logging.Format)

	ledger, err := openLedger(configDir, settings.Ledger.Enabled)
	if err != nil {
		return nil, err
	}

	transcriptWriters := writers.NewDefaultRegistry()
	processor := services.NewProcessor(normalisers.NewDefaultRegistry(), settings.Transcript)
	runner := services.NewBatchRunner(
		*settings,
		filesystem.NewFactory(),
		processor,
		transcriptWriters,
		ledger,
		uuid.NewString,
	)

	return &cli.Services{
		Cleaning: runner,
		Settings: settingsService,
		History:  services.NewHistoryService(ledger),
		Output:   services.NewOutputService(transcriptWriters, settings.Output.Prefix),
		Close:    ledger.Close,
	}, nil
}

// openLedger returns the SQLite ledger, or an in-memory one when disabled.
func openLedger(configDir string, enabled bool) (driven.LedgerStore, error) {
	if !enabled {
		logger.Debug("Ledger disabled, runs are kept in memory")
		return memory.NewLedgerStore(), nil
	}
	ledger, err := sqlite.NewLedgerStore(filepath.Join(configDir, "data"))
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return ledger, nil
}

func configureLogging(level, format string) {
	if v := os.Getenv(envLogLevel); v != "" {
		level = v
	}
	if v := os.Getenv(envLogFormat); v != "" {
		format = v
	}
	if err := logger.SetLevel(level); err != nil {
		logger.Warn("Ignoring log level: %v", err)
	}
	if err := logger.SetFormat(format); err != nil {
		logger.Warn("Ignoring log format: %v", err)
	}
}
