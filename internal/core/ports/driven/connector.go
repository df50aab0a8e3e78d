package driven

import (
	"context"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// Connector discovers transcript documents under a root directory.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// Root returns the directory the connector walks.
	Root() string

	// Validate checks the root exists and is a readable directory.
	Validate(ctx context.Context) error

	// Walk emits every matching document under the root in lexical order.
	// Documents carry URI, MIMEType and Metadata; Content is left empty and
	// read by the processor. Both channels are closed when the walk ends.
	Walk(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch emits changes to matching documents until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorFactory creates connectors for a root directory and filter.
type ConnectorFactory interface {
	// Create returns a connector walking root for files matching filter.
	Create(root string, filter domain.DiscoveryFilter) (Connector, error)
}
