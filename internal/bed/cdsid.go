package bed

import (
	"strconv"
	"strings"
)

// ParseCdsID parses a UCSC-style CDS identifier into its components.
// The accession may itself contain underscores (e.g. "NM_003620.4"), so the
// "_cds_" marker separates accession from the positional fields. Chromosome
// names may also contain underscores (e.g. "chrUn_gl000220"), so positional
// fields are taken from the ends.
func ParseCdsID(cdsID string) (CdsName, error) {
	idx := strings.Index(cdsID, "_cds_")
	if idx <= 0 {
		return CdsName{}, &MalformedCdsIDError{CdsID: cdsID, Reason: "missing _cds_ marker"}
	}

	name := CdsName{Accession: cdsID[:idx]}

	parts := strings.Split(cdsID[idx+len("_cds_"):], "_")
	if len(parts) < 5 {
		return CdsName{}, &MalformedCdsIDError{CdsID: cdsID, Reason: "too few fields after _cds_"}
	}

	exonIndex, err := strconv.Atoi(parts[0])
	if err != nil {
		return CdsName{}, &MalformedCdsIDError{CdsID: cdsID, Reason: "exon index is not an integer"}
	}
	name.ExonIndex = exonIndex

	subIndex, err := strconv.Atoi(parts[1])
	if err != nil {
		return CdsName{}, &MalformedCdsIDError{CdsID: cdsID, Reason: "subindex is not an integer"}
	}
	name.SubIndex = subIndex

	switch parts[len(parts)-1] {
	case "f":
		name.Strand = '+'
	case "r":
		name.Strand = '-'
	default:
		return CdsName{}, &MalformedCdsIDError{CdsID: cdsID, Reason: "strand code is not f or r"}
	}

	pos, err := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	if err != nil {
		return CdsName{}, &MalformedCdsIDError{CdsID: cdsID, Reason: "genomic position is not an integer"}
	}
	name.Pos = pos

	name.Chrom = strings.Join(parts[2:len(parts)-2], "_")
	if name.Chrom == "" {
		return CdsName{}, &MalformedCdsIDError{CdsID: cdsID, Reason: "missing chromosome"}
	}

	return name, nil
}
