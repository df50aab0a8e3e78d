// Package normalisers turns transcript documents into ordered paragraph
// texts. Each normaliser handles specific MIME types; the Registry picks
// one per document.
//
// Paragraph positions matter downstream (boundary paragraphs are dropped
// by position), so normalisers keep empty paragraphs.
package normalisers
