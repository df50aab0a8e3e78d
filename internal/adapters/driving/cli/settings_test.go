package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/services"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "settings", "show")

	require.NoError(t, err)
	for _, section := range []string{"[Transcript]", "[Discovery]", "[Output]", "[Ledger]", "[Logging]"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "Interviewer: "+domain.DefaultInterviewerName)
	assert.Contains(t, out, "Format: docx")
	assert.Contains(t, out, "Config file: /tmp/tclean/config.toml")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_ShowInvalid(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.settings.Transcript.InterviewerName = ""

	out, err := executeCommand(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: invalid input")
}

func TestSettingsCmd_ShowError(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.getErr = errors.New("corrupt file")

	_, err := executeCommand(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt file")
}

func TestSettingsCmd_Set(t *testing.T) {
	ts := setupTestServices(t)

	out, err := executeCommand(t, "settings", "set", "output.format", "yaml")

	require.NoError(t, err)
	assert.Equal(t, "yaml", ts.settings.set["output.format"])
	assert.Contains(t, out, "Set output.format = yaml")
}

func TestSettingsCmd_SetError(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.setErr = domain.ErrInvalidInput

	_, err := executeCommand(t, "settings", "set", "bogus.key", "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Valid keys: output.format, transcript.interviewer_name")
}

func TestSettingsCmd_Path(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "settings", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/tclean/config.toml\n", out)
}

func TestSettingsCmd_Wizard(t *testing.T) {
	ts := setupTestServices(t)

	// Interviewer, leading, trailing, input dir, start with, format choice.
	input := strings.Join([]string{"Jane Doe", "", "2", "/srv/recordings", "", "4"}, "\n") + "\n"
	rootCmd.SetIn(bytes.NewBufferString(input))
	defer rootCmd.SetIn(nil)

	out, err := executeCommand(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		services.KeyInterviewerName:  "Jane Doe",
		services.KeyTrailingBoundary: "2",
		services.KeyInputDir:         "/srv/recordings",
		services.KeyOutputFormat:     "yaml",
	}, ts.settings.set)
	assert.Contains(t, out, "Output format set to: yaml")
	assert.Contains(t, out, "All settings are valid and saved.")
}

func TestSettingsCmd_WizardKeepsDefaults(t *testing.T) {
	ts := setupTestServices(t)
	rootCmd.SetIn(bytes.NewBufferString(""))
	defer rootCmd.SetIn(nil)

	_, err := executeCommand(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{services.KeyOutputFormat: "docx"}, ts.settings.set)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"Empty input returns default", "", 4, 1, 1},
		{"Valid choice within range", "3", 4, 1, 3},
		{"Choice below minimum returns default", "0", 4, 1, 1},
		{"Choice above maximum returns default", "5", 4, 1, 1},
		{"Invalid input returns default", "abc", 4, 2, 2},
		{"Negative number returns default", "-1", 4, 1, 1},
		{"Maximum value is valid", "4", 4, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}

func TestSettingsCmd_ShowUnknownKeys(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.unknown = []string{"output.fromat"}

	out, err := executeCommand(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: unknown keys ignored: output.fromat")
}
