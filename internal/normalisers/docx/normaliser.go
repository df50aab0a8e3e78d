// Package docx reads the paragraphs of WordprocessingML (.docx) transcripts.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const documentPart = "word/document.xml"

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{domain.MIMEDocx}
}

// Paragraphs returns the text of every top-level paragraph in the
// document body, in order. Empty paragraphs are kept.
func (n *Normaliser) Paragraphs(_ context.Context, raw *domain.RawDocument) ([]string, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a docx archive: %w", domain.ErrInvalidInput, err)
	}

	content, err := readPart(reader, documentPart)
	if err != nil {
		return nil, err
	}

	return parseParagraphs(content)
}

// readPart returns the bytes of one archive member.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", domain.ErrInvalidInput, name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrInvalidInput, name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: %s missing", domain.ErrInvalidInput, name)
}

// parseParagraphs walks document.xml token by token. Only paragraphs that
// are direct children of the body are emitted; block-level tables and
// content controls (w:tbl, w:sdt) are skipped whole. Text runs (w:t) are
// concatenated per paragraph; w:tab becomes a tab and w:br / w:cr a
// newline. Paragraphs nested in text boxes are folded into the enclosing
// paragraph so positional counting matches the body Word shows.
func parseParagraphs(content []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		skip       int
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skip > 0 {
				if isBlockContainer(t.Name.Local) {
					skip++
				}
				continue
			}
			switch t.Name.Local {
			case "tbl", "sdt":
				if depth == 0 {
					skip = 1
				}
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteByte('\n')
				}
			}

		case xml.EndElement:
			if skip > 0 {
				if isBlockContainer(t.Name.Local) {
					skip--
				}
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "t":
				inText = false
			}

		case xml.CharData:
			if inText && skip == 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

func isBlockContainer(local string) bool {
	return local == "tbl" || local == "sdt"
}
