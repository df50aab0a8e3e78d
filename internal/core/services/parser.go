package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// lineShape is <speaker> <timestamp> <speech>. The speaker group is
	// non-greedy so the first timestamp-shaped token splits the line.
	lineShape = regexp.MustCompile(`^(.+?)\s+(\d{1,2}:\d{2}(?::\d{2})?)\s+(.+)$`)
)

// CollapseWhitespace replaces every whitespace run, newlines included,
// with a single space and trims the result.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// ParseLine decomposes one paragraph into speaker, timestamp and speech.
// The second return value is false when the paragraph does not have that
// shape; callers skip such paragraphs.
func ParseLine(text string) (domain.Utterance, bool) {
	m := lineShape.FindStringSubmatch(CollapseWhitespace(text))
	if m == nil {
		return domain.Utterance{}, false
	}
	return domain.Utterance{
		SpeakerLabel: m[1],
		TimestampRaw: m[2],
		SpeechRaw:    m[3],
	}, true
}
