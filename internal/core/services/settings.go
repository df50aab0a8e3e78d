package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyInterviewerName  = "transcript.interviewer_name"
	KeyLeadingBoundary  = "transcript.leading_boundary"
	KeyTrailingBoundary = "transcript.trailing_boundary"
	KeyTimestampPolicy  = "transcript.timestamp_policy"
	KeyInputDir         = "discovery.input_dir"
	KeyStartWith        = "discovery.start_with"
	KeyExtension        = "discovery.extension"
	KeyOutputFormat     = "output.format"
	KeyOutputMetadata   = "output.metadata"
	KeyOutputPrefix     = "output.prefix"
	KeyLedgerEnabled    = "ledger.enabled"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
)

var settingKeys = []struct {
	key  string
	kind keyKind
}{
	{KeyInterviewerName, kindString},
	{KeyLeadingBoundary, kindInt},
	{KeyTrailingBoundary, kindInt},
	{KeyTimestampPolicy, kindString},
	{KeyInputDir, kindString},
	{KeyStartWith, kindString},
	{KeyExtension, kindString},
	{KeyOutputFormat, kindString},
	{KeyOutputMetadata, kindBool},
	{KeyOutputPrefix, kindString},
	{KeyLedgerEnabled, kindBool},
	{KeyLogLevel, kindString},
	{KeyLogFormat, kindString},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing keys take their
// defaults; values of the wrong type or outside the allowed set do too.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Transcript: domain.TranscriptSettings{
			InterviewerName:  s.getString(KeyInterviewerName, d.Transcript.InterviewerName),
			LeadingBoundary:  s.getInt(KeyLeadingBoundary, d.Transcript.LeadingBoundary),
			TrailingBoundary: s.getInt(KeyTrailingBoundary, d.Transcript.TrailingBoundary),
			TimestampPolicy:  s.getPolicy(d.Transcript.TimestampPolicy),
		},
		Discovery: domain.DiscoverySettings{
			InputDir:  s.getString(KeyInputDir, d.Discovery.InputDir),
			StartWith: s.getString(KeyStartWith, d.Discovery.StartWith),
			Extension: s.getString(KeyExtension, d.Discovery.Extension),
		},
		Output: domain.OutputSettings{
			Format:   s.getFormat(d.Output.Format),
			Metadata: s.getBool(KeyOutputMetadata, d.Output.Metadata),
			Prefix:   s.getString(KeyOutputPrefix, d.Output.Prefix),
		},
		Ledger: domain.LedgerSettings{
			Enabled: s.getBool(KeyLedgerEnabled, d.Ledger.Enabled),
		},
		Logging: domain.LoggingSettings{
			Level:  s.getString(KeyLogLevel, d.Logging.Level),
			Format: s.getString(KeyLogFormat, d.Logging.Format),
		},
	}

	return settings, nil
}

// Set parses value according to the key's type, checks the resulting
// settings are valid and persists the key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := lookupKey(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var typed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		typed = n
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		typed = b
	default:
		typed = value
	}

	if err := s.validateValue(key, typed); err != nil {
		return err
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// Unknown returns stored keys that are not settings, such as typos in the
// config file. They are kept but never read.
func (s *SettingsService) Unknown() []string {
	var unknown []string
	for _, key := range s.configStore.Keys() {
		if _, ok := lookupKey(key); !ok {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// validateValue applies the candidate value to the current settings and
// validates the result, so that Get never sees a value Set rejected.
func (s *SettingsService) validateValue(key string, value any) error {
	current, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyTimestampPolicy:
		p := domain.TimestampPolicy(value.(string))
		if !p.IsValid() {
			return fmt.Errorf("%w: timestamp policy %q (want skip or abort)", domain.ErrInvalidInput, p)
		}
	case KeyOutputFormat:
		f := domain.OutputFormat(value.(string))
		if !f.IsValid() {
			return fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, f)
		}
	case KeyLogLevel:
		switch value.(string) {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%w: log level %q", domain.ErrInvalidInput, value)
		}
	case KeyLogFormat:
		if v := value.(string); v != "text" && v != "json" {
			return fmt.Errorf("%w: log format %q", domain.ErrInvalidInput, v)
		}
	case KeyInterviewerName:
		current.Transcript.InterviewerName = value.(string)
	case KeyLeadingBoundary:
		current.Transcript.LeadingBoundary = value.(int)
	case KeyTrailingBoundary:
		current.Transcript.TrailingBoundary = value.(int)
	case KeyExtension:
		current.Discovery.Extension = value.(string)
	}

	return current.Validate()
}

func lookupKey(key string) (keyKind, bool) {
	for _, k := range settingKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return kindString, false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats an explicit 0 as a value, not as "unset".
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	n := s.configStore.GetInt(key)
	if n < 0 {
		return defaultVal
	}
	return n
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPolicy(defaultVal domain.TimestampPolicy) domain.TimestampPolicy {
	p := domain.TimestampPolicy(s.configStore.GetString(KeyTimestampPolicy))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	f := domain.OutputFormat(s.configStore.GetString(KeyOutputFormat))
	if !f.IsValid() {
		return defaultVal
	}
	return f
}
