package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tclean/internal/core/services"
)

const (
	// uriScheme is the custom URI scheme for tclean resources.
	uriScheme = "tclean://"

	timeLayout = time.RFC3339
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Active tclean configuration with defaults applied",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent cleaning runs and the documents they handled",
		MIMEType:    "application/json",
	}, s.handleRunsResource)
}

// handleSettingsResource returns the active settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return jsonResource(req.Params.URI, settings)
}

// handleRunsResource returns recent runs with their documents.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, []any{})
	}

	details, err := s.ports.History.Recent(ctx, services.DefaultHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	type docInfo struct {
		Source        string `json:"source"`
		Output        string `json:"output,omitempty"`
		ParticipantID string `json:"participant_id,omitempty"`
		Status        string `json:"status"`
		Entries       int    `json:"entries"`
		Error         string `json:"error,omitempty"`
	}
	type runInfo struct {
		RunOutput
		Documents []docInfo `json:"documents"`
	}

	infos := make([]runInfo, len(details))
	for i := range details {
		docs := make([]docInfo, len(details[i].Documents))
		for j, d := range details[i].Documents {
			docs[j] = docInfo{
				Source:        d.Source,
				Output:        d.Output,
				ParticipantID: d.ParticipantID,
				Status:        d.Status.String(),
				Entries:       d.Entries,
				Error:         d.Error,
			}
		}
		infos[i] = runInfo{RunOutput: runOutput(details[i].Run), Documents: docs}
	}

	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
