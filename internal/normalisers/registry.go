package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/normalisers/docx"
	"github.com/custodia-labs/tclean/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches documents to normalisers by MIME type. A normaliser
// registered later replaces an earlier one for the same MIME type.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byMIME: make(map[string]driven.Normaliser)}
}

// NewDefaultRegistry creates a registry with the DOCX and plain text
// normalisers registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(docx.New())
	r.Register(plaintext.New())
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mimeType := range normaliser.SupportedMIMETypes() {
		r.byMIME[mimeType] = normaliser
	}
}

// Paragraphs extracts paragraphs with the normaliser for raw.MIMEType.
func (r *Registry) Paragraphs(ctx context.Context, raw *domain.RawDocument) ([]string, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	normaliser, ok := r.byMIME[raw.MIMEType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.MIMEType)
	}

	return normaliser.Paragraphs(ctx, raw)
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.byMIME))
	for t := range r.byMIME {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
