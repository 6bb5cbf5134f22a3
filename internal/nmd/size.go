package nmd

// Sizes holds the per-transcript length bookkeeping used to classify
// truncating variants.
type Sizes struct {
	TranscriptName string
	// CDSLength is the total coding length in nucleotides.
	CDSLength int64
	// EscapeLength counts the coding nucleotides at the 3' end where a
	// premature stop codon escapes decay (last exon plus the junction
	// window). CDSLength == DecayLength + EscapeLength always holds.
	EscapeLength int64
	// DecayLength counts the coding nucleotides where a premature stop
	// codon triggers decay.
	DecayLength int64
	// ProteinLength is CDSLength/3, the encoded protein length in residues.
	ProteinLength int64
	// EscapeProteinStart is the protein-space coordinate of the escape
	// boundary, ProteinLength - EscapeLength/3. Fractional when the
	// boundary does not fall on a codon edge.
	EscapeProteinStart float64
}

// ComputeSizes derives the size record for one transcript using the same
// traversal as EscapeBoundary. A window of 0 or less selects DefaultWindow.
func ComputeSizes(t *Transcript, window int64) Sizes {
	b := EscapeBoundary(t, window)
	total := t.CDSLength()

	s := Sizes{
		TranscriptName: t.Name,
		CDSLength:      total,
		EscapeLength:   b.EscapeLength,
		DecayLength:    total - b.EscapeLength,
		ProteinLength:  total / 3,
	}
	s.EscapeProteinStart = float64(s.ProteinLength) - float64(s.EscapeLength)/3
	return s
}

// ComputeAllSizes derives size records for every transcript, in input order.
func ComputeAllSizes(transcripts []*Transcript, window int64) []Sizes {
	sizes := make([]Sizes, 0, len(transcripts))
	for _, t := range transcripts {
		sizes = append(sizes, ComputeSizes(t, window))
	}
	return sizes
}
