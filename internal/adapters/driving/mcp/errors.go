// Package mcp provides an MCP (Model Context Protocol) server adapter for tclean.
// It lets AI assistants clean transcripts and inspect discovered files and
// past runs without writing anything to disk.
package mcp

import "errors"

// ErrMissingCleaningService is returned when the cleaning service is not provided.
var ErrMissingCleaningService = errors.New("mcp: cleaning service is required")
