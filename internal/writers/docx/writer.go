// Package docx writes cleaned transcripts as WordprocessingML documents:
// per entry a Heading 2 paragraph (speaker), a Heading 3 paragraph (time)
// and a Normal paragraph (speech).
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	docxreader "github.com/custodia-labs/tclean/internal/normalisers/docx"
)

// Ensure Writer implements the interfaces.
var (
	_ driven.TranscriptWriter = (*Writer)(nil)
	_ driven.TranscriptReader = (*Writer)(nil)
)

// Paragraph style identifiers.
const (
	StyleSpeaker = "Heading2"
	StyleTime    = "Heading3"
	StyleSpeech  = "Normal"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + wordNS + `">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/>` +
	`<w:rPr><w:sz w:val="22"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/>` +
	`<w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="240" w:after="0"/><w:outlineLvl w:val="1"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/>` +
	`<w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="40" w:after="0"/><w:outlineLvl w:val="2"/></w:pPr>` +
	`<w:rPr><w:color w:val="595959"/><w:sz w:val="24"/></w:rPr></w:style>` +
	`</w:styles>`

// Writer produces DOCX packages.
type Writer struct {
	// modified is stamped on archive members so output is reproducible.
	modified time.Time
}

// New creates a new DOCX writer.
func New() *Writer {
	return &Writer{modified: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Format returns domain.FormatDocx.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatDocx
}

// Write serialises entries to out as a DOCX package.
func (w *Writer) Write(out io.Writer, entries []domain.TranscriptEntry, _ driven.WriteOptions) error {
	zw := zip.NewWriter(out)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", renderDocument(entries)},
	}

	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: w.modified,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.content); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}

	return zw.Close()
}

// renderDocument builds word/document.xml.
func renderDocument(entries []domain.TranscriptEntry) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, e := range entries {
		writeParagraph(&b, StyleSpeaker, e.Speaker)
		writeParagraph(&b, StyleTime, e.Time)
		writeParagraph(&b, StyleSpeech, e.Speech)
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`)
	return b.Bytes()
}

func writeParagraph(b *bytes.Buffer, style, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="`)
	b.WriteString(style)
	b.WriteString(`"/></w:pPr><w:r><w:t xml:space="preserve">`)
	// EscapeText only fails when the writer does; bytes.Buffer never does.
	_ = xml.EscapeText(b, []byte(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

// Read parses a document written by Write: paragraphs come in
// speaker/time/speech triples.
func (w *Writer) Read(in io.Reader) ([]domain.TranscriptEntry, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	paragraphs, err := docxreader.New().Paragraphs(context.Background(), &domain.RawDocument{
		MIMEType: domain.MIMEDocx,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}
	if len(paragraphs)%3 != 0 {
		return nil, fmt.Errorf("%w: %d paragraphs is not a whole number of entries",
			domain.ErrInvalidInput, len(paragraphs))
	}

	entries := make([]domain.TranscriptEntry, 0, len(paragraphs)/3)
	for i := 0; i < len(paragraphs); i += 3 {
		entries = append(entries, domain.TranscriptEntry{
			Speaker: paragraphs[i],
			Time:    paragraphs[i+1],
			Speech:  paragraphs[i+2],
		})
	}
	return entries, nil
}
