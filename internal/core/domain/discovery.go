package domain

import (
	"mime"
	"path/filepath"
	"strings"
)

// MIME types of transcript documents.
const (
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// MIMETypeForPath returns the MIME type of a transcript file by extension.
// Parameters such as charset are stripped.
func MIMETypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return MIMEDocx
	case "", ".txt", ".text":
		return MIMEText
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.Index(t, ";"); i >= 0 {
			t = t[:i]
		}
		return strings.TrimSpace(t)
	}
	return "application/octet-stream"
}

// DiscoveryFilter selects source transcripts by filename.
type DiscoveryFilter struct {
	// StartWith is the literal filename prefix. Empty matches any name.
	StartWith string

	// Extension is the required suffix, including the dot.
	Extension string

	// ExcludePrefix rejects names starting with it (cleaned outputs).
	ExcludePrefix string
}

// Match reports whether a file name (not path) is a source transcript.
func (f DiscoveryFilter) Match(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	if f.ExcludePrefix != "" && strings.HasPrefix(name, f.ExcludePrefix) {
		return false
	}
	if !strings.HasPrefix(name, f.StartWith) {
		return false
	}
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(f.Extension))
}
