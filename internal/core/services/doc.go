// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The transcript pipeline is layered bottom-up:
//
//   - ParseLine splits one paragraph into an Utterance
//   - Normalizer turns an Utterance into an anonymised TranscriptEntry
//   - Processor drops boundary paragraphs and runs the two above in order
//   - BatchRunner walks a directory and saves one output per transcript
//
// Services are pure Go with no CGO or external dependencies.
package services
