package driven

// ConfigStore holds tclean's configuration as dot-notation keys
// ("transcript.interviewer_name", "output.format").
type ConfigStore interface {
	// Get retrieves a value by key and reports whether it exists.
	Get(key string) (any, bool)

	// GetString returns "" for missing or non-string values.
	GetString(key string) string

	// GetInt returns 0 for missing or non-integer values.
	GetInt(key string) int

	// GetBool returns false for missing or non-boolean values.
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load re-reads the configuration, replacing what is held.
	Load() error

	// Keys returns every stored key, sorted.
	Keys() []string

	// Path returns where the configuration lives.
	Path() string
}
