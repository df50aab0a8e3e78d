package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document format or output format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Transcript Errors.

	// ErrTimestampFormat indicates a timestamp that is neither MM:SS nor HH:MM:SS.
	ErrTimestampFormat = errors.New("unrecognised timestamp format")

	// ErrNoParticipant indicates no participant identifier could be derived from the path.
	ErrNoParticipant = errors.New("no participant identifier in path")

	// ErrDocumentUnreadable indicates a transcript document could not be opened or decoded.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrNoEntries indicates a document yielded no transcript entries.
	ErrNoEntries = errors.New("no transcript entries")

	// Output Errors.

	// ErrOutputExists indicates the cleaned output already exists and was left untouched.
	ErrOutputExists = errors.New("output already exists")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")
)
