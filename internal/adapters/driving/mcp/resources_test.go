package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSettingsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns settings as JSON", func(t *testing.T) {
		settings := domain.DefaultSettings()
		server := newTestServer(t, &Ports{
			Cleaning: &mockCleaningService{},
			Settings: &mockSettingsService{settings: &settings},
		})

		result, err := server.handleSettingsResource(ctx, makeReadResourceRequest("tclean://settings"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, domain.DefaultInterviewerName)
	})

	t.Run("not found without settings port", func(t *testing.T) {
		server := newTestServer(t, &Ports{Cleaning: &mockCleaningService{}})

		_, err := server.handleSettingsResource(ctx, makeReadResourceRequest("tclean://settings"))

		assert.Error(t, err)
	})

	t.Run("settings error is wrapped", func(t *testing.T) {
		server := newTestServer(t, &Ports{
			Cleaning: &mockCleaningService{},
			Settings: &mockSettingsService{err: errors.New("bad toml")},
		})

		_, err := server.handleSettingsResource(ctx, makeReadResourceRequest("tclean://settings"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting settings")
	})
}

func TestServer_handleRunsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list without history port", func(t *testing.T) {
		server := newTestServer(t, &Ports{Cleaning: &mockCleaningService{}})

		result, err := server.handleRunsResource(ctx, makeReadResourceRequest("tclean://runs"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns runs with documents", func(t *testing.T) {
		history := &mockHistoryService{
			details: []driving.RunDetail{{
				Run: domain.RunRecord{ID: "run-1", Format: "docx", StartedAt: time.Now(), Written: 1},
				Documents: []domain.DocumentRecord{{
					RunID:         "run-1",
					Source:        "/r/P001/Interview-A.docx",
					ParticipantID: "P001",
					Status:        domain.StatusWritten,
					Entries:       4,
				}},
			}},
		}
		server := newTestServer(t, &Ports{Cleaning: &mockCleaningService{}, History: history})

		result, err := server.handleRunsResource(ctx, makeReadResourceRequest("tclean://runs"))

		require.NoError(t, err)
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "run-1", decoded[0]["id"])
		docs, ok := decoded[0]["documents"].([]any)
		require.True(t, ok)
		require.Len(t, docs, 1)
		assert.Equal(t, "written", docs[0].(map[string]any)["status"])
	})

	t.Run("history error is wrapped", func(t *testing.T) {
		history := &mockHistoryService{err: errors.New("locked")}
		server := newTestServer(t, &Ports{Cleaning: &mockCleaningService{}, History: history})

		_, err := server.handleRunsResource(ctx, makeReadResourceRequest("tclean://runs"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing runs")
	})
}
