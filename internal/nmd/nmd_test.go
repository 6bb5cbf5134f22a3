package nmd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inodb/nmd-escape/internal/bed"
)

// loadFixture reads the reconstructed RefSeq CDS fixture:
// NM_003620.4 on '+' (5 exons, 1818 nt CDS, 558 nt last exon) and
// NM_138576.4 on '-' (4 exons, 2685 nt CDS, 2045 nt last exon).
func loadFixture(t *testing.T) []*Transcript {
	t.Helper()

	p, err := bed.NewParser("testdata/test_cds.bed")
	require.NoError(t, err)
	defer p.Close()

	intervals, err := p.ReadAll()
	require.NoError(t, err)

	transcripts, err := BuildTranscripts(intervals)
	require.NoError(t, err)
	return transcripts
}

// byName returns the named transcript from the fixture.
func byName(t *testing.T, transcripts []*Transcript, name string) *Transcript {
	t.Helper()
	for _, tr := range transcripts {
		if tr.Name == name {
			return tr
		}
	}
	t.Fatalf("transcript %s not in fixture", name)
	return nil
}

// makeExon builds a synthetic CDS interval for constructed test transcripts.
func makeExon(acc string, exonIndex int, chrom string, start, end int64, strand byte) bed.Interval {
	code := "f"
	if strand == '-' {
		code = "r"
	}
	cdsID := fmt.Sprintf("%s_cds_%d_0_%s_%d_%s", acc, exonIndex, chrom, start+1, code)
	return bed.Interval{
		Chrom:  chrom,
		Start:  start,
		End:    end,
		CdsID:  cdsID,
		Score:  "0",
		Strand: strand,
		Name: bed.CdsName{
			Accession: acc,
			ExonIndex: exonIndex,
			Chrom:     chrom,
			Pos:       start + 1,
			Strand:    strand,
		},
	}
}
