package nmd

// DefaultWindow is the number of coding nucleotides upstream of the last
// exon-exon junction within which a premature stop codon escapes decay.
const DefaultWindow = 50

// Region is a genomic span (0-based, half-open) covered by the escape zone.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

// Size returns the region length in nucleotides.
func (r Region) Size() int64 {
	return r.End - r.Start
}

// Boundary describes the NMD escape region of one transcript.
type Boundary struct {
	TranscriptName string
	Chrom          string
	Strand         byte
	// BoundaryPos is the genomic coordinate where the escape region begins
	// in transcript-reading direction. On the '+' strand everything at or
	// beyond it (toward higher coordinates within the CDS) escapes decay;
	// on the '-' strand the inequality reverses.
	BoundaryPos int64
	// Regions covers the escape zone in transcript-reading order:
	// the trailing window of the second-to-last exon (walking into earlier
	// exons when that exon is short), then the entire last exon.
	Regions      []Region
	EscapeLength int64
}

// EscapeBoundary derives the escape region of a transcript. A window of 0 or
// less selects DefaultWindow.
//
// Transcripts with a single coding exon have no exon-exon junction, so the
// whole CDS escapes. The same holds when the window walks past the first
// exon, e.g. a two-exon transcript whose first exon is shorter than the
// window.
func EscapeBoundary(t *Transcript, window int64) *Boundary {
	if window <= 0 {
		window = DefaultWindow
	}

	b := &Boundary{
		TranscriptName: t.Name,
		Chrom:          t.Chrom,
		Strand:         t.Strand,
	}

	n := len(t.Exons)
	if n < 2 {
		return wholeCDS(t, b)
	}

	last := t.Exons[n-1]
	regions := []Region{{Chrom: last.Chrom, Start: last.Start, End: last.End}}
	b.EscapeLength = last.Size()

	remaining := window
	for i := n - 2; i >= 0 && remaining > 0; i-- {
		exon := t.Exons[i]
		take := remaining
		if exon.Size() < take {
			take = exon.Size()
		}

		var portion Region
		if t.Strand == '+' {
			portion = Region{Chrom: exon.Chrom, Start: exon.End - take, End: exon.End}
			b.BoundaryPos = portion.Start
		} else {
			portion = Region{Chrom: exon.Chrom, Start: exon.Start, End: exon.Start + take}
			b.BoundaryPos = portion.End
		}

		regions = append([]Region{portion}, regions...)
		b.EscapeLength += take
		remaining -= take
	}

	if remaining > 0 {
		// Window ran past the 5' end of the CDS: everything escapes.
		return wholeCDS(t, b)
	}

	b.Regions = regions
	return b
}

// wholeCDS marks the entire coding sequence as escape region.
func wholeCDS(t *Transcript, b *Boundary) *Boundary {
	if len(t.Exons) == 0 {
		return b
	}
	b.Regions = b.Regions[:0]
	b.EscapeLength = 0
	for i := range t.Exons {
		exon := t.Exons[i]
		b.Regions = append(b.Regions, Region{Chrom: exon.Chrom, Start: exon.Start, End: exon.End})
		b.EscapeLength += exon.Size()
	}

	first := t.Exons[0]
	if t.Strand == '+' {
		b.BoundaryPos = first.Start
	} else {
		b.BoundaryPos = first.End
	}
	return b
}
