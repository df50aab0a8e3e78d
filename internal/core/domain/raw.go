package domain

// RawDocument represents opaque bytes fetched by a connector.
// It is the connector's output before paragraph extraction.
type RawDocument struct {
	// URI is the file path of the transcript.
	URI string

	// MIMEType is the content type (e.g., the WordprocessingML type).
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeCreated indicates a new document.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document.
	ChangeUpdated

	// ChangeDeleted indicates a removed document.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawDocumentChange represents a change event from a connector.
// Used by watch mode.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected document.
	// Content is empty for deletions.
	Document RawDocument
}
