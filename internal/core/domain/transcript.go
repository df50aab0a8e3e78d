package domain

// InterviewerSpeaker is the speaker label given to every utterance
// attributed to the interviewer.
const InterviewerSpeaker = "Interviewer"

// Utterance is one raw speaker/timestamp/speech triple extracted from a
// single paragraph before normalisation. All fields are non-empty.
type Utterance struct {
	// SpeakerLabel is the raw speaker text preceding the timestamp.
	SpeakerLabel string

	// TimestampRaw is the original timestamp, MM:SS or HH:MM:SS.
	TimestampRaw string

	// SpeechRaw is the paragraph text following the timestamp.
	SpeechRaw string
}

// TranscriptEntry is a normalised, anonymised transcript line ready for
// serialisation.
type TranscriptEntry struct {
	// Speaker is either InterviewerSpeaker or the participant identifier.
	Speaker string `json:"speaker" yaml:"speaker"`

	// Time is the canonical HH:MM:SS timestamp.
	Time string `json:"time" yaml:"time"`

	// Speech is the spoken text with the candidate's name redacted.
	Speech string `json:"speech" yaml:"speech"`
}

// IsInterviewer reports whether the entry was spoken by the interviewer.
func (e TranscriptEntry) IsInterviewer() bool {
	return e.Speaker == InterviewerSpeaker
}

// DocumentContext is the per-file context needed to normalise utterances.
// It is derived once per transcript from its filesystem path.
type DocumentContext struct {
	// ParticipantID is the P0\d+ code found in the parent directory name.
	ParticipantID string

	// CandidateName is the interviewee's real name taken from the filename.
	// Empty when the filename carries no name; redaction is then skipped.
	CandidateName string

	// InterviewerName is the exact speaker label used by the interviewer.
	InterviewerName string
}

// HasCandidate reports whether a candidate name is known for redaction.
func (c DocumentContext) HasCandidate() bool {
	return c.CandidateName != ""
}
