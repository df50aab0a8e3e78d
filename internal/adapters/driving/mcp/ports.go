package mcp

import (
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Cleaning runs the transcript pipeline.
	Cleaning driving.CleaningService

	// History reads the run ledger.
	History driving.HistoryService

	// Settings exposes the active configuration.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Cleaning == nil {
		return ErrMissingCleaningService
	}
	// History and Settings are optional
	return nil
}
