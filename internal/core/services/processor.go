package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/logger"
)

// Processor turns one transcript document into an ordered list of entries.
type Processor struct {
	registry driven.NormaliserRegistry
	settings domain.TranscriptSettings
	readFile func(string) ([]byte, error)
	parse    func(string) (domain.Utterance, bool)
}

// NewProcessor creates a document processor.
func NewProcessor(registry driven.NormaliserRegistry, settings domain.TranscriptSettings) *Processor {
	return &Processor{
		registry: registry,
		settings: settings,
		readFile: os.ReadFile,
		parse:    ParseLine,
	}
}

// ProcessFile derives the document context from path, opens the document
// and processes it. It never panics on bad input: an unreadable document
// yields a failed result with no entries.
func (p *Processor) ProcessFile(ctx context.Context, path string) domain.ProcessResult {
	result := domain.ProcessResult{Source: path}

	docCtx, err := DeriveContext(path, p.settings.InterviewerName)
	if err != nil {
		return failed(result, err)
	}
	result.ParticipantID = docCtx.ParticipantID

	content, err := p.readFile(path)
	if err != nil {
		logger.Error("Cannot open transcript %s: %v", path, err)
		return failed(result, fmt.Errorf("%w: %w", domain.ErrDocumentUnreadable, err))
	}
	logger.Info("Open transcript: %s", path)

	raw := &domain.RawDocument{
		URI:      path,
		MIMEType: domain.MIMETypeForPath(path),
		Content:  content,
	}
	entries, skipped, err := p.Process(ctx, raw, docCtx)
	result.SkippedParagraphs = skipped
	if err != nil {
		return failed(result, err)
	}
	result.Entries = entries
	return result
}

// Process extracts paragraphs from raw and runs them through the pipeline.
// It returns the entries and the number of non-empty paragraphs skipped.
func (p *Processor) Process(
	ctx context.Context,
	raw *domain.RawDocument,
	docCtx domain.DocumentContext,
) ([]domain.TranscriptEntry, int, error) {
	if raw == nil {
		return nil, 0, domain.ErrInvalidInput
	}
	paragraphs, err := p.registry.Paragraphs(ctx, raw)
	if err != nil {
		logger.Error("Cannot read transcript %s: %v", raw.URI, err)
		if errors.Is(err, domain.ErrUnsupportedType) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrDocumentUnreadable, err)
	}
	return p.ProcessParagraphs(raw.URI, paragraphs, docCtx)
}

// ProcessParagraphs drops the boundary paragraphs, then parses and
// normalises the rest in order. uri is only used for log messages.
func (p *Processor) ProcessParagraphs(
	uri string,
	paragraphs []string,
	docCtx domain.DocumentContext,
) ([]domain.TranscriptEntry, int, error) {
	lead, trail := p.settings.LeadingBoundary, p.settings.TrailingBoundary
	if len(paragraphs) <= lead+trail {
		logger.Warn("%s: only %d paragraphs, nothing left after boundaries", uri, len(paragraphs))
		return nil, 0, nil
	}
	body := paragraphs[lead : len(paragraphs)-trail]

	normalizer := NewNormalizer(docCtx)
	entries := make([]domain.TranscriptEntry, 0, len(body))
	skipped := 0

	for i, para := range body {
		position := lead + i + 1
		text := CollapseWhitespace(para)
		if text == "" {
			continue
		}

		utterance, ok := p.parse(text)
		if !ok {
			skipped++
			logger.Warn("%s: paragraph %d has no speaker/timestamp, skipping: %q", uri, position, truncate(text, 60))
			continue
		}

		entry, err := normalizer.Normalize(utterance)
		if err != nil {
			if p.settings.TimestampPolicy == domain.TimestampAbort {
				return nil, skipped, fmt.Errorf("paragraph %d: %w", position, err)
			}
			skipped++
			logger.Warn("%s: paragraph %d: %v, skipping", uri, position, err)
			continue
		}

		logger.Debug("%s: paragraph %d -> %s %s", uri, position, entry.Speaker, entry.Time)
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}

func failed(result domain.ProcessResult, err error) domain.ProcessResult {
	result.Status = domain.StatusFailed
	result.Err = err
	result.Entries = nil
	return result
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
