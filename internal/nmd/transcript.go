// Package nmd computes nonsense-mediated decay escape regions for transcripts
// and classifies truncating frameshift variants against them.
package nmd

import (
	"fmt"
	"sort"

	"github.com/inodb/nmd-escape/internal/bed"
)

// Transcript holds one transcript's coding exons in transcript-reading order:
// ascending genomic start on the '+' strand, descending on the '-' strand.
type Transcript struct {
	Name   string // transcript accession, e.g. "NM_003620.4"
	Chrom  string
	Strand byte
	Exons  []bed.Interval
}

// CDSLength returns the total coding length in nucleotides.
func (t *Transcript) CDSLength() int64 {
	var total int64
	for i := range t.Exons {
		total += t.Exons[i].Size()
	}
	return total
}

// BuildTranscripts groups CDS intervals by transcript accession and orders
// each group's exons in transcript-reading direction. Duplicate rows with the
// same cds_id and start (pseudoautosomal regions) are dropped. All intervals
// of one transcript must agree on strand.
func BuildTranscripts(intervals []bed.Interval) ([]*Transcript, error) {
	groups := make(map[string]*Transcript)
	seen := make(map[string]bool)

	for i := range intervals {
		iv := intervals[i]

		dupKey := fmt.Sprintf("%s:%d", iv.CdsID, iv.Start)
		if seen[dupKey] {
			continue
		}
		seen[dupKey] = true

		t, ok := groups[iv.Name.Accession]
		if !ok {
			t = &Transcript{
				Name:   iv.Name.Accession,
				Chrom:  iv.Chrom,
				Strand: iv.Strand,
			}
			groups[iv.Name.Accession] = t
		} else if t.Strand != iv.Strand {
			return nil, &bed.InvalidStrandError{
				CdsID:  iv.CdsID,
				Strand: fmt.Sprintf("%c conflicts with %c", iv.Strand, t.Strand),
			}
		}
		t.Exons = append(t.Exons, iv)
	}

	transcripts := make([]*Transcript, 0, len(groups))
	for _, t := range groups {
		sortExons(t)
		transcripts = append(transcripts, t)
	}

	// Deterministic output order
	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].Name < transcripts[j].Name
	})

	return transcripts, nil
}

// sortExons orders exons in transcript-reading direction.
func sortExons(t *Transcript) {
	if t.Strand == '+' {
		sort.Slice(t.Exons, func(i, j int) bool {
			return t.Exons[i].Start < t.Exons[j].Start
		})
	} else {
		sort.Slice(t.Exons, func(i, j int) bool {
			return t.Exons[i].Start > t.Exons[j].Start
		})
	}
}
