package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

func TestListCmd(t *testing.T) {
	ts := setupTestServices(t)
	ts.cleaning.candidates = []driving.Candidate{
		{
			Path:         "/data/P001 Alice/Interview_A.docx",
			Context:      domain.DocumentContext{ParticipantID: "P001"},
			OutputExists: true,
		},
		{
			Path:    "/data/P002 Bob/Interview_B.docx",
			Context: domain.DocumentContext{ParticipantID: "P002"},
		},
	}

	out, err := executeCommand(t, "list", "/data", "--start-with", "Interview_")

	require.NoError(t, err)
	assert.Equal(t, "/data", ts.cleaning.runOpts.InputDir)
	assert.Equal(t, "Interview_", ts.cleaning.runOpts.StartWith)
	assert.Contains(t, out, "PARTICIPANT")
	assert.Regexp(t, `P001\s+cleaned\s+/data/P001 Alice/Interview_A.docx`, out)
	assert.Regexp(t, `P002\s+pending\s+/data/P002 Bob/Interview_B.docx`, out)
	assert.Contains(t, out, "2 transcript(s), 1 pending")
}

func TestListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No transcripts found.")
}

func TestListCmd_Error(t *testing.T) {
	ts := setupTestServices(t)
	ts.cleaning.err = domain.ErrNotFound

	_, err := executeCommand(t, "list", "/missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
