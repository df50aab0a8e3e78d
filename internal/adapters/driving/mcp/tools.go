package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
	"github.com/custodia-labs/tclean/internal/core/services"
)

// CleanInput is the input schema for the clean_transcript tool.
type CleanInput struct {
	Path string `json:"path" jsonschema:"path to a transcript inside a participant directory such as Recordings/P003"`
}

// CleanOutput is the output schema for the clean_transcript tool.
type CleanOutput struct {
	ParticipantID     string                   `json:"participant_id"`
	Output            string                   `json:"output"`
	Count             int                      `json:"count"`
	SkippedParagraphs int                      `json:"skipped_paragraphs"`
	Entries           []domain.TranscriptEntry `json:"entries"`
}

// ListInput is the input schema for the list_transcripts tool.
type ListInput struct {
	Root      string `json:"root,omitempty" jsonschema:"directory to walk (default: configured input directory)"`
	StartWith string `json:"start_with,omitempty" jsonschema:"filename prefix of source transcripts (default: configured prefix)"`
}

// ListOutput is the output schema for the list_transcripts tool.
type ListOutput struct {
	Transcripts []TranscriptOutput `json:"transcripts"`
	Count       int                `json:"count"`
}

// TranscriptOutput describes one discovered transcript.
type TranscriptOutput struct {
	Path          string `json:"path"`
	ParticipantID string `json:"participant_id"`
	Output        string `json:"output"`
	OutputExists  bool   `json:"output_exists"`
}

// HistoryInput is the input schema for the run_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 10)"`
}

// HistoryOutput is the output schema for the run_history tool.
type HistoryOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// RunOutput summarises one ledger run.
type RunOutput struct {
	ID         string `json:"id"`
	Root       string `json:"root"`
	Format     string `json:"format"`
	DryRun     bool   `json:"dry_run"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Written    int    `json:"written"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clean_transcript",
		Description: "Parse, anonymise and normalise one interview transcript without writing any file",
	}, s.handleClean)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_transcripts",
		Description: "List source transcripts under a directory with their participant ids and output status",
	}, s.handleList)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "run_history",
			Description: "List recent cleaning runs from the ledger",
		}, s.handleHistory)
	}
}

// handleClean handles the clean_transcript tool invocation.
func (s *Server) handleClean(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CleanInput,
) (*mcp.CallToolResult, CleanOutput, error) {
	if input.Path == "" {
		return nil, CleanOutput{}, errors.New("path is required")
	}

	result := s.ports.Cleaning.Clean(ctx, input.Path)
	if result.Status == domain.StatusFailed {
		return nil, CleanOutput{}, result.Err
	}

	entries := result.Entries
	if entries == nil {
		entries = []domain.TranscriptEntry{}
	}

	return nil, CleanOutput{
		ParticipantID:     result.ParticipantID,
		Output:            result.Output,
		Count:             len(entries),
		SkippedParagraphs: result.SkippedParagraphs,
		Entries:           entries,
	}, nil
}

// handleList handles the list_transcripts tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	candidates, err := s.ports.Cleaning.Discover(ctx, driving.RunOptions{
		InputDir:  input.Root,
		StartWith: input.StartWith,
	})
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Transcripts: make([]TranscriptOutput, len(candidates)),
		Count:       len(candidates),
	}
	for i, c := range candidates {
		output.Transcripts[i] = TranscriptOutput{
			Path:          c.Path,
			ParticipantID: c.Context.ParticipantID,
			Output:        c.Output,
			OutputExists:  c.OutputExists,
		}
	}

	return nil, output, nil
}

// handleHistory handles the run_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = services.DefaultHistoryLimit
	}

	details, err := s.ports.History.Recent(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Runs:  make([]RunOutput, len(details)),
		Count: len(details),
	}
	for i := range details {
		output.Runs[i] = runOutput(details[i].Run)
	}

	return nil, output, nil
}

func runOutput(run domain.RunRecord) RunOutput {
	out := RunOutput{
		ID:        run.ID,
		Root:      run.Root,
		Format:    run.Format,
		DryRun:    run.DryRun,
		StartedAt: run.StartedAt.Format(timeLayout),
		Written:   run.Written,
		Skipped:   run.Skipped,
		Failed:    run.Failed,
	}
	if !run.FinishedAt.IsZero() {
		out.FinishedAt = run.FinishedAt.Format(timeLayout)
	}
	return out
}
