package nmd

import (
	"go.uber.org/zap"

	"github.com/inodb/nmd-escape/internal/hgvs"
	"github.com/inodb/nmd-escape/internal/variant"
)

// Class is the NMD classification of a truncating variant.
type Class string

const (
	// ClassEscape: the introduced stop codon falls within the escape
	// region, the transcript evades decay and a truncated protein is made.
	ClassEscape Class = "escape"
	// ClassDecay: the stop codon lies upstream of the escape region and
	// the transcript is degraded.
	ClassDecay Class = "decay"
	// ClassUnknown: the row could not be classified; Result.Err says why.
	ClassUnknown Class = "unknown"
)

// Result is one annotated variant row.
type Result struct {
	variant.Record
	Frameshift     *hgvs.Frameshift
	StopProteinPos int64 // 1-based residue position of the introduced stop
	StopNtStart    int64 // 1-based CDS nucleotide where the stop codon starts
	Class          Class
	Err            error // MalformedNotationError or UnknownTranscriptError
}

// Escapes reports whether the variant was classified as NMD-escaping.
func (r *Result) Escapes() bool {
	return r.Class == ClassEscape
}

// Annotator classifies truncating frameshift variants against a size table.
type Annotator struct {
	sizes  map[string]Sizes
	logger *zap.Logger
}

// NewAnnotator creates an annotator over the given size records.
func NewAnnotator(sizes []Sizes) *Annotator {
	m := make(map[string]Sizes, len(sizes))
	for _, s := range sizes {
		m[s.TranscriptName] = s
	}
	return &Annotator{sizes: m, logger: zap.NewNop()}
}

// SetLogger sets the logger for per-row warnings.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Annotate classifies each variant record. The batch never aborts: rows with
// malformed notation or an unknown transcript are passed through with Err set
// and class "unknown", so the output has the same rows in the same order as
// the input.
func (a *Annotator) Annotate(records []variant.Record) []Result {
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, a.annotateOne(rec))
	}
	return results
}

func (a *Annotator) annotateOne(rec variant.Record) Result {
	res := Result{Record: rec, Class: ClassUnknown}

	fs, err := hgvs.ParseFrameshift(rec.HGVSp)
	if err != nil {
		res.Err = err
		a.logger.Warn("skipping variant with unparseable notation",
			zap.String("transcript", rec.TranscriptName),
			zap.String("hgvsp", rec.HGVSp),
			zap.Int("line", rec.Line))
		return res
	}
	res.Frameshift = fs
	res.StopProteinPos = fs.StopPos()
	// First nucleotide of the stop codon, 1-based from the CDS start.
	res.StopNtStart = (res.StopProteinPos-1)*3 + 1

	sizes, ok := a.sizes[rec.TranscriptName]
	if !ok {
		res.Err = &UnknownTranscriptError{TranscriptName: rec.TranscriptName}
		a.logger.Warn("skipping variant on transcript without size record",
			zap.String("transcript", rec.TranscriptName),
			zap.Int("line", rec.Line))
		return res
	}

	// A stop codon within EscapeLength of the 3' end evades decay.
	if sizes.CDSLength-res.StopNtStart <= sizes.EscapeLength {
		res.Class = ClassEscape
	} else {
		res.Class = ClassDecay
	}
	return res
}
