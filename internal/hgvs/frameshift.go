// Package hgvs provides HGVS protein notation parsing functionality.
package hgvs

import (
	"fmt"
	"regexp"
	"strconv"
)

// Frameshift holds the parsed fields of a truncating frameshift HGVSp string
// such as "NP_003611.1:p.Cys300LeufsTer129".
type Frameshift struct {
	Prefix    string // reference protein accession, e.g. "NP_003611.1"
	RefAA     string // three-letter code of the first altered residue
	Pos       int64  // 1-based protein position of the first altered residue
	AltAA     string // three-letter code of the residue replacing it
	TerOffset int64  // residues from Pos to the new stop codon, inclusive
}

// StopPos returns the 1-based protein position of the introduced stop codon.
func (f *Frameshift) StopPos() int64 {
	return f.Pos + f.TerOffset - 1
}

// MalformedNotationError reports an HGVSp string that does not describe a
// truncating frameshift.
type MalformedNotationError struct {
	Notation string
}

func (e *MalformedNotationError) Error() string {
	return fmt.Sprintf("notation %q does not match <prefix>:p.<Ref><Pos><Alt>fsTer<Offset>", e.Notation)
}

// Truncating frameshift per the HGVS recommendations, three-letter codes,
// versioned protein accession prefix. "fsTer?" (stop position unknown) is
// deliberately not matched.
var reFrameshift = regexp.MustCompile(`^(\S+\.\d+):p\.([A-Z][a-z]{2})(\d+)([A-Z][a-z]{2})fsTer(\d+)$`)

// ParseFrameshift parses a truncating frameshift HGVSp notation string.
// Classification logic never touches raw notation strings; this is the only
// place the pattern is interpreted.
func ParseFrameshift(notation string) (*Frameshift, error) {
	m := reFrameshift.FindStringSubmatch(notation)
	if m == nil {
		return nil, &MalformedNotationError{Notation: notation}
	}

	pos, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil || pos < 1 {
		return nil, &MalformedNotationError{Notation: notation}
	}
	offset, err := strconv.ParseInt(m[5], 10, 64)
	if err != nil || offset < 1 {
		return nil, &MalformedNotationError{Notation: notation}
	}

	return &Frameshift{
		Prefix:    m[1],
		RefAA:     m[2],
		Pos:       pos,
		AltAA:     m[4],
		TerOffset: offset,
	}, nil
}
