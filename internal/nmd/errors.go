package nmd

import "fmt"

// UnknownTranscriptError reports a variant whose transcript accession has no
// entry in the size table.
type UnknownTranscriptError struct {
	TranscriptName string
}

func (e *UnknownTranscriptError) Error() string {
	return fmt.Sprintf("transcript %s not present in size table", e.TranscriptName)
}

// InsufficientExonsError reports a transcript with fewer coding exons than a
// caller requires. The boundary and size calculators treat single-exon
// transcripts as fully escaping rather than erroring; strict callers can use
// RequireExons to reject them instead.
type InsufficientExonsError struct {
	TranscriptName string
	Exons          int
	Required       int
}

func (e *InsufficientExonsError) Error() string {
	return fmt.Sprintf("transcript %s has %d coding exons, need %d",
		e.TranscriptName, e.Exons, e.Required)
}

// RequireExons returns an InsufficientExonsError if the transcript has fewer
// than n coding exons.
func RequireExons(t *Transcript, n int) error {
	if len(t.Exons) < n {
		return &InsufficientExonsError{
			TranscriptName: t.Name,
			Exons:          len(t.Exons),
			Required:       n,
		}
	}
	return nil
}
