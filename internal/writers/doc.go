// Package writers serialises cleaned transcripts.
//
// Each sub-package implements driven.TranscriptWriter for one output
// format. The Registry picks a writer by format and saves atomically: the
// output is rendered to a hidden temporary file in the target directory,
// synced, and then linked into place, so a failed serialisation never
// leaves a partial output and an existing output is never replaced.
package writers
