package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/nmd-escape/internal/nmd"
	"github.com/inodb/nmd-escape/internal/variant"
)

func TestBoundaryWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewBoundaryWriter(&buf)

	b := &nmd.Boundary{
		TranscriptName: "NM_003620.4",
		Chrom:          "chr17",
		Strand:         '+',
		BoundaryPos:    60680219,
		Regions: []nmd.Region{
			{Chrom: "chr17", Start: 60680219, End: 60680269},
			{Chrom: "chr17", Start: 60682000, End: 60682558},
		},
		EscapeLength: 608,
	}

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(b))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "#chrom\tstart\tend\ttranscript_name\tboundary_pos\tstrand", lines[0])
	assert.Equal(t, "chr17\t60680219\t60680269\tNM_003620.4\t60680219\t+", lines[1])
	assert.Equal(t, "chr17\t60682000\t60682558\tNM_003620.4\t60680219\t+", lines[2])
}

func TestSizesWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewSizesWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(nmd.Sizes{
		TranscriptName:     "NM_003620.4",
		CDSLength:          1818,
		EscapeLength:       608,
		DecayLength:        1210,
		ProteinLength:      606,
		EscapeProteinStart: 403.5,
	}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "transcript_name\tcds_size\tnmd_escape_size\tnmd_decay_size\ttotal_pdot_length\tnmd_pdot_start", lines[0])
	assert.Equal(t, "NM_003620.4\t1818\t608\t1210\t606\t403.5", lines[1])
}

func TestResultWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewResultWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(&nmd.Result{
		Record:         variant.Record{TranscriptName: "NM_003620.4", HGVSp: "NP_003611.1:p.Cys300LeufsTer129"},
		StopProteinPos: 428,
		StopNtStart:    1282,
		Class:          nmd.ClassEscape,
	}))
	require.NoError(t, w.Write(&nmd.Result{
		Record: variant.Record{TranscriptName: "NM_138576.4", HGVSp: "garbage"},
		Class:  nmd.ClassUnknown,
		Err:    errors.New("notation \"garbage\" does not match"),
	}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "transcript_name\tHGVSp\tstop_pdot\tstop_nt_start\tnmd_class\terror", lines[0])
	assert.Equal(t, "NM_003620.4\tNP_003611.1:p.Cys300LeufsTer129\t428\t1282\tescape\t-", lines[1])
	assert.Equal(t, "NM_138576.4\tgarbage\t-\t-\tunknown\tnotation \"garbage\" does not match", lines[2])
}
