package driven

import (
	"context"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// Normaliser extracts the ordered paragraph texts of a transcript document.
// Each normaliser handles specific MIME types (e.g., DOCX, plain text).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Paragraphs returns every paragraph of the document in order, including
	// empty ones. Boundary paragraphs are counted positionally, so empty
	// paragraphs must not be dropped here.
	Paragraphs(ctx context.Context, raw *domain.RawDocument) ([]string, error)
}

// NormaliserRegistry selects the appropriate normaliser for a document.
type NormaliserRegistry interface {
	// Paragraphs extracts paragraphs using the normaliser registered for
	// the document's MIME type.
	Paragraphs(ctx context.Context, raw *domain.RawDocument) ([]string, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
