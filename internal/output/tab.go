// Package output provides tab-delimited writers for the derived NMD tables.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/nmd-escape/internal/nmd"
)

// BoundaryWriter writes escape-region spans in BED-style tab-delimited form,
// one row per region.
type BoundaryWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewBoundaryWriter creates a new boundary table writer.
func NewBoundaryWriter(w io.Writer) *BoundaryWriter {
	return &BoundaryWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#chrom",
			"start",
			"end",
			"transcript_name",
			"boundary_pos",
			"strand",
		},
	}
}

// WriteHeader writes the header line.
func (bw *BoundaryWriter) WriteHeader() error {
	_, err := bw.w.WriteString(strings.Join(bw.columns, "\t") + "\n")
	return err
}

// Write writes all escape-region spans of one transcript.
func (bw *BoundaryWriter) Write(b *nmd.Boundary) error {
	for _, r := range b.Regions {
		values := []string{
			r.Chrom,
			strconv.FormatInt(r.Start, 10),
			strconv.FormatInt(r.End, 10),
			b.TranscriptName,
			strconv.FormatInt(b.BoundaryPos, 10),
			string(b.Strand),
		}
		if _, err := bw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (bw *BoundaryWriter) Flush() error {
	return bw.w.Flush()
}

// SizesWriter writes the per-transcript size table.
type SizesWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewSizesWriter creates a new size table writer.
func NewSizesWriter(w io.Writer) *SizesWriter {
	return &SizesWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"transcript_name",
			"cds_size",
			"nmd_escape_size",
			"nmd_decay_size",
			"total_pdot_length",
			"nmd_pdot_start",
		},
	}
}

// WriteHeader writes the header line.
func (sw *SizesWriter) WriteHeader() error {
	_, err := sw.w.WriteString(strings.Join(sw.columns, "\t") + "\n")
	return err
}

// Write writes a single size record.
func (sw *SizesWriter) Write(s nmd.Sizes) error {
	values := []string{
		s.TranscriptName,
		strconv.FormatInt(s.CDSLength, 10),
		strconv.FormatInt(s.EscapeLength, 10),
		strconv.FormatInt(s.DecayLength, 10),
		strconv.FormatInt(s.ProteinLength, 10),
		strconv.FormatFloat(s.EscapeProteinStart, 'f', -1, 64),
	}
	_, err := sw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (sw *SizesWriter) Flush() error {
	return sw.w.Flush()
}

// ResultWriter writes the annotated variant table, preserving input order.
type ResultWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewResultWriter creates a new annotation table writer.
func NewResultWriter(w io.Writer) *ResultWriter {
	return &ResultWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"transcript_name",
			"HGVSp",
			"stop_pdot",
			"stop_nt_start",
			"nmd_class",
			"error",
		},
	}
}

// WriteHeader writes the header line.
func (rw *ResultWriter) WriteHeader() error {
	_, err := rw.w.WriteString(strings.Join(rw.columns, "\t") + "\n")
	return err
}

// Write writes a single annotated variant row.
func (rw *ResultWriter) Write(r *nmd.Result) error {
	stopPdot := "-"
	stopNt := "-"
	if r.StopProteinPos > 0 {
		stopPdot = strconv.FormatInt(r.StopProteinPos, 10)
		stopNt = strconv.FormatInt(r.StopNtStart, 10)
	}

	errMsg := "-"
	if r.Err != nil {
		errMsg = r.Err.Error()
	}

	values := []string{
		r.TranscriptName,
		r.HGVSp,
		stopPdot,
		stopNt,
		string(r.Class),
		errMsg,
	}
	_, err := rw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (rw *ResultWriter) Flush() error {
	return rw.w.Flush()
}
