package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

// Normalizer rewrites utterances of one document into transcript entries.
// It is pure: the same utterance always yields the same entry.
type Normalizer struct {
	docCtx   domain.DocumentContext
	redactor *nameRedactor
}

// NewNormalizer creates a normalizer bound to one document's context.
func NewNormalizer(docCtx domain.DocumentContext) *Normalizer {
	return &Normalizer{
		docCtx:   docCtx,
		redactor: newNameRedactor(docCtx.CandidateName, docCtx.ParticipantID),
	}
}

// Normalize resolves the speaker, redacts the candidate's name and
// canonicalises the timestamp. The only error is domain.ErrTimestampFormat.
func (n *Normalizer) Normalize(u domain.Utterance) (domain.TranscriptEntry, error) {
	ts, err := CanonicalTimestamp(u.TimestampRaw)
	if err != nil {
		return domain.TranscriptEntry{}, err
	}
	return domain.TranscriptEntry{
		Speaker: ResolveSpeaker(u.SpeakerLabel, n.docCtx),
		Time:    ts,
		Speech:  n.redactor.replace(u.SpeechRaw),
	}, nil
}

// ResolveSpeaker returns domain.InterviewerSpeaker when label is exactly the
// interviewer's name or the literal "Interviewer", and the participant
// identifier otherwise. Applying it to its own output is stable.
func ResolveSpeaker(label string, docCtx domain.DocumentContext) string {
	if label == docCtx.InterviewerName || label == domain.InterviewerSpeaker {
		return domain.InterviewerSpeaker
	}
	return docCtx.ParticipantID
}

// RedactName replaces whole-word, case-insensitive occurrences of the
// first token of name, optionally followed by the rest of the name, with
// replacement. An empty name leaves text unchanged.
func RedactName(text, name, replacement string) string {
	return newNameRedactor(name, replacement).replace(text)
}

// CanonicalTimestamp converts MM:SS or HH:MM:SS into zero-padded HH:MM:SS.
func CanonicalTimestamp(raw string) (string, error) {
	parts := strings.Split(raw, ":")
	var hms [3]string
	switch len(parts) {
	case 2:
		hms = [3]string{"0", parts[0], parts[1]}
	case 3:
		hms = [3]string{parts[0], parts[1], parts[2]}
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrTimestampFormat, raw)
	}

	out := make([]string, 0, 3)
	for _, p := range hms {
		if p == "" || len(p) > 2 {
			return "", fmt.Errorf("%w: %q", domain.ErrTimestampFormat, raw)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return "", fmt.Errorf("%w: %q", domain.ErrTimestampFormat, raw)
		}
		out = append(out, fmt.Sprintf("%02d", v))
	}
	return strings.Join(out, ":"), nil
}

// nameRedactor matches a candidate name on word boundaries. RE2 has no
// Unicode-aware \b, so boundaries are checked by hand around each match.
type nameRedactor struct {
	full        *regexp.Regexp
	first       *regexp.Regexp
	replacement string
}

func newNameRedactor(name, replacement string) *nameRedactor {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return &nameRedactor{}
	}

	firstPattern := regexp.QuoteMeta(tokens[0])
	fullPattern := firstPattern
	if len(tokens) > 1 {
		rest := make([]string, 0, len(tokens)-1)
		for _, tok := range tokens[1:] {
			rest = append(rest, regexp.QuoteMeta(tok))
		}
		fullPattern += `(?:\s+` + strings.Join(rest, `\s+`) + `)?`
	}

	return &nameRedactor{
		full:        regexp.MustCompile(`(?i)` + fullPattern),
		first:       regexp.MustCompile(`(?i)^` + firstPattern),
		replacement: replacement,
	}
}

func (r *nameRedactor) replace(text string) string {
	if r.full == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range r.full.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		if !wordBoundaryBefore(text, start) {
			continue
		}
		if !wordBoundaryAfter(text, end) {
			// "Jordan Leeds": the full name overran, fall back to the first token.
			loc := r.first.FindStringIndex(text[start:])
			if loc == nil || !wordBoundaryAfter(text, start+loc[1]) {
				continue
			}
			end = start + loc[1]
		}
		b.WriteString(text[last:start])
		b.WriteString(r.replacement)
		last = end
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}
