// Package plaintext reads transcripts exported as plain text, one paragraph
// per line.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const byteOrderMark = "\ufeff"

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{domain.MIMEText}
}

// Paragraphs splits the content into lines. CRLF and CR line endings are
// accepted, a leading byte order mark is dropped, and a single trailing
// newline does not produce an extra empty paragraph.
func (n *Normaliser) Paragraphs(_ context.Context, raw *domain.RawDocument) ([]string, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, domain.ErrInvalidInput
	}

	text := strings.TrimPrefix(string(raw.Content), byteOrderMark)
	if text == "" {
		return []string{}, nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n"), nil
}
