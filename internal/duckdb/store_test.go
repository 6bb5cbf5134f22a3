package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/nmd-escape/internal/nmd"
	"github.com/inodb/nmd-escape/internal/variant"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteAndLoadSizes(t *testing.T) {
	s := openInMemory(t)

	sizes := []nmd.Sizes{
		{
			TranscriptName: "NM_003620.4",
			CDSLength:      1818, EscapeLength: 608, DecayLength: 1210,
			ProteinLength: 606, EscapeProteinStart: 403.3333333333333,
		},
		{
			TranscriptName: "NM_138576.4",
			CDSLength:      2685, EscapeLength: 2095, DecayLength: 590,
			ProteinLength: 895, EscapeProteinStart: 196.66666666666669,
		},
	}

	require.NoError(t, s.WriteSizes(sizes))

	got, err := s.LoadSizes()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sizes[0].TranscriptName, got[0].TranscriptName)
	assert.Equal(t, sizes[0].CDSLength, got[0].CDSLength)
	assert.Equal(t, sizes[1].EscapeLength, got[1].EscapeLength)
	assert.InDelta(t, sizes[1].EscapeProteinStart, got[1].EscapeProteinStart, 1e-9)
}

func TestWriteAndLookupBoundaries(t *testing.T) {
	s := openInMemory(t)

	boundaries := []*nmd.Boundary{
		{
			TranscriptName: "NM_003620.4",
			Chrom:          "chr17",
			Strand:         '+',
			BoundaryPos:    60680219,
			Regions: []nmd.Region{
				{Chrom: "chr17", Start: 60680219, End: 60680269},
				{Chrom: "chr17", Start: 60682000, End: 60682558},
			},
			EscapeLength: 608,
		},
	}

	require.NoError(t, s.WriteBoundaries(boundaries))

	got, err := s.LookupBoundary("NM_003620.4")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, byte('+'), got.Strand)
	assert.Equal(t, int64(60680219), got.BoundaryPos)
	require.Len(t, got.Regions, 2)
	assert.Equal(t, boundaries[0].Regions, got.Regions)
	assert.Equal(t, int64(608), got.EscapeLength)

	missing, err := s.LookupBoundary("NM_000000.0")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWriteResultsDeduplicates(t *testing.T) {
	s := openInMemory(t)

	r := nmd.Result{
		Record:         variant.Record{TranscriptName: "NM_003620.4", HGVSp: "NP_003611.1:p.Cys300LeufsTer129"},
		StopProteinPos: 428,
		StopNtStart:    1282,
		Class:          nmd.ClassEscape,
	}

	// Same variant twice; written once
	require.NoError(t, s.WriteResults([]nmd.Result{r, r}))

	got, err := s.SearchByClass(nmd.ClassEscape)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1282), got[0].StopNtStart)

	empty, err := s.SearchByClass(nmd.ClassDecay)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClearResults(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteResults([]nmd.Result{{
		Record: variant.Record{TranscriptName: "NM_003620.4", HGVSp: "NP_003611.1:p.Cys81LeufsTer129"},
		Class:  nmd.ClassDecay,
	}}))
	require.NoError(t, s.ClearResults())

	got, err := s.SearchByClass(nmd.ClassDecay)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadVariants(t *testing.T) {
	s := openInMemory(t)

	_, err := s.DB().Exec(`CREATE TABLE variants (transcript_name VARCHAR, hgvsp VARCHAR)`)
	require.NoError(t, err)
	_, err = s.DB().Exec(`INSERT INTO variants VALUES
		('NM_003620.4', 'NP_003611.1:p.Cys300LeufsTer129'),
		('NM_003620.4', 'NP_003611.1:p.Cys81LeufsTer129')`)
	require.NoError(t, err)

	records, err := s.LoadVariants()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "NP_003611.1:p.Cys300LeufsTer129", records[0].HGVSp)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 2, records[1].Line)
}

func TestSizeCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	bedPath := filepath.Join(dir, "test.bed")
	require.NoError(t, os.WriteFile(bedPath, []byte("chr17\t100\t200\tNM_1.1_cds_0_0_chr17_101_f\t0\t+\n"), 0644))

	fp, err := StatFile(bedPath)
	require.NoError(t, err)

	sc := NewSizeCache(bedPath)
	assert.False(t, sc.Valid(fp, 50))

	sizes := []nmd.Sizes{{
		TranscriptName: "NM_1.1",
		CDSLength:      100, EscapeLength: 100, DecayLength: 0, ProteinLength: 33,
	}}
	require.NoError(t, sc.Write(sizes, fp, 50))

	assert.True(t, sc.Valid(fp, 50))
	// A different window invalidates the cache
	assert.False(t, sc.Valid(fp, 55))

	got, err := sc.Load()
	require.NoError(t, err)
	assert.Equal(t, sizes, got)

	sc.Clear()
	assert.False(t, sc.Valid(fp, 50))
}
