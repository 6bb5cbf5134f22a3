// Package bed provides CDS BED record parsing functionality.
package bed

import "fmt"

// Interval is one coding exon segment of a transcript, in 6-column BED form
// (0-based start, exclusive end).
type Interval struct {
	Chrom  string
	Start  int64
	End    int64
	CdsID  string
	Score  string // unused, carried through to output
	Strand byte   // '+' or '-'

	Name CdsName // parsed from CdsID at ingestion
}

// Size returns the interval length in nucleotides.
func (iv *Interval) Size() int64 {
	return iv.End - iv.Start
}

// CdsName holds the fields encoded in a UCSC-style CDS identifier of the form
// <ACCESSION>_cds_<exon_index>_<subindex>_<chrom>_<genomic_pos>_<strand_code>,
// e.g. "NM_003620.4_cds_2_0_chr17_60663655_f".
type CdsName struct {
	Accession string
	ExonIndex int
	SubIndex  int
	Chrom     string
	Pos       int64
	Strand    byte // 'f' -> '+', 'r' -> '-'
}

// InvalidStrandError reports a strand field that is neither '+' nor '-'.
type InvalidStrandError struct {
	CdsID  string
	Strand string
}

func (e *InvalidStrandError) Error() string {
	return fmt.Sprintf("invalid strand %q for %s", e.Strand, e.CdsID)
}

// MalformedCdsIDError reports a cds_id that does not follow the expected
// naming convention.
type MalformedCdsIDError struct {
	CdsID  string
	Reason string
}

func (e *MalformedCdsIDError) Error() string {
	return fmt.Sprintf("malformed cds_id %q: %s", e.CdsID, e.Reason)
}

// FormatError reports a BED line that cannot be parsed.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bed line %d: %s", e.Line, e.Message)
}
