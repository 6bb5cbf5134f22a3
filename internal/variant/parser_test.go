package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const variantTable = "transcript_name\tHGVSp\n" +
	"NM_003620.4\tNP_003611.1:p.Cys300LeufsTer129\n" +
	"NM_003620.4\tNP_003611.1:p.Cys81LeufsTer129\n" +
	"NM_138576.4\tNP_612808.1:p.Ala512ProfsTer21\n"

func TestParserReadAll(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader(variantTable))
	require.NoError(t, err)

	records, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "NM_003620.4", records[0].TranscriptName)
	assert.Equal(t, "NP_003611.1:p.Cys300LeufsTer129", records[0].HGVSp)
	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, 4, records[2].Line)
}

func TestParserExtraColumns(t *testing.T) {
	input := "gene\ttranscript_name\tconsequence\tHGVSp\n" +
		"PPM1D\tNM_003620.4\tframeshift_variant\tNP_003611.1:p.Cys300LeufsTer129\n"
	p, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	records, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "NM_003620.4", records[0].TranscriptName)
	assert.Equal(t, "NP_003611.1:p.Cys300LeufsTer129", records[0].HGVSp)
}

func TestParserSkipsCommentsAndBlanks(t *testing.T) {
	input := "# produced upstream\n\n" + variantTable
	p, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	records, err := p.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestParserMissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no transcript_name", "gene\tHGVSp\n"},
		{"no HGVSp", "transcript_name\tgene\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParserFromReader(strings.NewReader(tt.header))
			require.Error(t, err)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParserEmptyInput(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader(""))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "no header")
}

func TestParserShortRow(t *testing.T) {
	input := "transcript_name\tHGVSp\nNM_003620.4\n"
	p, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	_, err = p.ReadAll()
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}
