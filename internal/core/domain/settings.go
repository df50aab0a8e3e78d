package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputFormat names a cleaned-transcript serialisation.
type OutputFormat string

// Available output formats.
const (
	// FormatDocx writes a WordprocessingML document with speaker/time headings.
	FormatDocx OutputFormat = "docx"

	// FormatText writes one line per entry with an optional metadata prefix.
	FormatText OutputFormat = "text"

	// FormatXLSX writes a spreadsheet with Speaker, Time and Speech columns.
	FormatXLSX OutputFormat = "xlsx"

	// FormatYAML writes a list of speaker/time/speech mappings.
	FormatYAML OutputFormat = "yaml"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatDocx, FormatText, FormatXLSX, FormatYAML:
		return true
	default:
		return false
	}
}

// Extension returns the file extension, including the dot.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatDocx:
		return ".docx"
	case FormatText:
		return ".txt"
	case FormatXLSX:
		return ".xlsx"
	case FormatYAML:
		return ".yaml"
	default:
		return ""
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// FormatForPath returns the output format whose extension path carries.
func FormatForPath(path string) (OutputFormat, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range []OutputFormat{FormatDocx, FormatText, FormatXLSX, FormatYAML} {
		if f.Extension() == ext {
			return f, true
		}
	}
	if ext == ".yml" {
		return FormatYAML, true
	}
	return "", false
}

// TimestampPolicy decides what an unrecognised timestamp does to a document.
type TimestampPolicy string

// Available timestamp policies.
const (
	// TimestampSkip drops only the offending entry and logs a warning.
	TimestampSkip TimestampPolicy = "skip"

	// TimestampAbort discards the whole document.
	TimestampAbort TimestampPolicy = "abort"
)

// IsValid returns true if the policy is recognised.
func (p TimestampPolicy) IsValid() bool {
	return p == TimestampSkip || p == TimestampAbort
}

// String returns the string representation.
func (p TimestampPolicy) String() string {
	return string(p)
}

// TranscriptSettings controls parsing and normalisation.
type TranscriptSettings struct {
	// InterviewerName is the exact speaker label used by the interviewer.
	InterviewerName string `toml:"interviewer_name" jsonschema:"description=Exact speaker label of the interviewer"`

	// LeadingBoundary is the number of front-matter paragraphs to drop.
	LeadingBoundary int `toml:"leading_boundary" jsonschema:"minimum=0,description=Front-matter paragraphs dropped unconditionally"`

	// TrailingBoundary is the number of footer paragraphs to drop.
	TrailingBoundary int `toml:"trailing_boundary" jsonschema:"minimum=0,description=Footer paragraphs dropped unconditionally"`

	// TimestampPolicy decides whether a bad timestamp drops the entry or the document.
	TimestampPolicy TimestampPolicy `toml:"timestamp_policy" jsonschema:"enum=skip,enum=abort"`
}

// DiscoverySettings controls which files the batch runner picks up.
type DiscoverySettings struct {
	// InputDir is the root directory to walk.
	InputDir string `toml:"input_dir"`

	// StartWith is the literal filename prefix of source transcripts.
	StartWith string `toml:"start_with"`

	// Extension is the source document extension, including the dot.
	Extension string `toml:"extension"`
}

// OutputSettings controls how cleaned transcripts are written.
type OutputSettings struct {
	// Format is the serialisation format.
	Format OutputFormat `toml:"format" jsonschema:"enum=docx,enum=text,enum=xlsx,enum=yaml"`

	// Metadata prefixes each text line with speaker and time.
	Metadata bool `toml:"metadata"`

	// Prefix is the output filename prefix; the participant id follows it.
	Prefix string `toml:"prefix"`
}

// LedgerSettings controls the run ledger.
type LedgerSettings struct {
	// Enabled records runs in the SQLite ledger.
	Enabled bool `toml:"enabled"`
}

// LoggingSettings controls log output.
type LoggingSettings struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// Format is text or json.
	Format string `toml:"format" jsonschema:"enum=text,enum=json"`
}

// Settings is the complete tclean configuration.
type Settings struct {
	Transcript TranscriptSettings `toml:"transcript"`
	Discovery  DiscoverySettings  `toml:"discovery"`
	Output     OutputSettings     `toml:"output"`
	Ledger     LedgerSettings     `toml:"ledger"`
	Logging    LoggingSettings    `toml:"logging"`
}

// Default values.
const (
	DefaultInterviewerName  = "Hoorad Abootalebi"
	DefaultLeadingBoundary  = 4
	DefaultTrailingBoundary = 1
	DefaultInputDir         = "./Recordings"
	DefaultStartWith        = "Interview_ Social and Cultural Observations on Practices in Cybersecurity Engagement (SCOPE)"
	DefaultExtension        = ".docx"
	DefaultOutputPrefix     = "Interview_Transcript_"
)

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Transcript: TranscriptSettings{
			InterviewerName:  DefaultInterviewerName,
			LeadingBoundary:  DefaultLeadingBoundary,
			TrailingBoundary: DefaultTrailingBoundary,
			TimestampPolicy:  TimestampSkip,
		},
		Discovery: DiscoverySettings{
			InputDir:  DefaultInputDir,
			StartWith: DefaultStartWith,
			Extension: DefaultExtension,
		},
		Output: OutputSettings{
			Format: FormatDocx,
			Prefix: DefaultOutputPrefix,
		},
		Ledger: LedgerSettings{
			Enabled: true,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the settings for values the pipeline cannot work with.
func (s Settings) Validate() error {
	if s.Transcript.InterviewerName == "" {
		return fmt.Errorf("%w: transcript.interviewer_name is empty", ErrInvalidInput)
	}
	if s.Transcript.LeadingBoundary < 0 || s.Transcript.TrailingBoundary < 0 {
		return fmt.Errorf("%w: boundary counts must not be negative", ErrInvalidInput)
	}
	if !s.Transcript.TimestampPolicy.IsValid() {
		return fmt.Errorf("%w: timestamp policy %q", ErrInvalidInput, s.Transcript.TimestampPolicy)
	}
	if !s.Output.Format.IsValid() {
		return fmt.Errorf("%w: output format %q", ErrUnsupportedType, s.Output.Format)
	}
	if s.Discovery.Extension == "" {
		return fmt.Errorf("%w: discovery.extension is empty", ErrInvalidInput)
	}
	return nil
}

// OutputName returns the cleaned output filename for a participant.
func (s Settings) OutputName(participantID string) string {
	return s.Output.Prefix + participantID + s.Output.Format.Extension()
}
