package services

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

var participantPattern = regexp.MustCompile(`P0\d+`)

// ParticipantID extracts the first P0\d+ identifier from a directory name.
func ParticipantID(dirName string) (string, bool) {
	id := participantPattern.FindString(dirName)
	return id, id != ""
}

// CandidateName extracts the interviewee's name from a transcript filename:
// the text after the first '-' and before the extension. Later dashes belong
// to the name ("Mary-Jane Smith").
func CandidateName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	i := strings.Index(stem, "-")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(stem[i+1:])
}

// DeriveContext builds the per-document context from a transcript path.
// The participant identifier must appear in the parent directory name.
func DeriveContext(path, interviewerName string) (domain.DocumentContext, error) {
	dir := filepath.Base(filepath.Dir(path))
	pid, ok := ParticipantID(dir)
	if !ok {
		return domain.DocumentContext{}, fmt.Errorf("%w: %s", domain.ErrNoParticipant, path)
	}
	return domain.DocumentContext{
		ParticipantID:   pid,
		CandidateName:   CandidateName(filepath.Base(path)),
		InterviewerName: interviewerName,
	}, nil
}
