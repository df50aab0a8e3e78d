package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

type fixedNormaliser struct {
	mimeTypes  []string
	paragraphs []string
}

func (f *fixedNormaliser) SupportedMIMETypes() []string { return f.mimeTypes }

func (f *fixedNormaliser) Paragraphs(context.Context, *domain.RawDocument) ([]string, error) {
	return f.paragraphs, nil
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []string{domain.MIMEDocx, domain.MIMEText}, r.SupportedMIMETypes())
}

func TestRegistry_DispatchesByMIMEType(t *testing.T) {
	r := NewDefaultRegistry()

	got, err := r.Paragraphs(context.Background(), &domain.RawDocument{
		MIMEType: domain.MIMEText,
		Content:  []byte("front\nJordan Lee 1:05 hi\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"front", "Jordan Lee 1:05 hi"}, got)
}

func TestRegistry_UnsupportedType(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Paragraphs(context.Background(), &domain.RawDocument{MIMEType: "application/pdf"})

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_NilDocument(t *testing.T) {
	_, err := NewRegistry().Paragraphs(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(&fixedNormaliser{mimeTypes: []string{domain.MIMEText}, paragraphs: []string{"override"}})

	got, err := r.Paragraphs(context.Background(), &domain.RawDocument{MIMEType: domain.MIMEText})

	require.NoError(t, err)
	assert.Equal(t, []string{"override"}, got)
}
