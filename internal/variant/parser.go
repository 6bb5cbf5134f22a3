// Package variant provides variant table parsing functionality.
package variant

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Expected variant table column names
const (
	ColTranscriptName = "transcript_name"
	ColHGVSp          = "HGVSp"
)

// Record is one variant row: the transcript it lands on and its HGVSp
// protein-change notation.
type Record struct {
	TranscriptName string
	HGVSp          string
	Line           int // 1-based line number in the source table
}

// ParseError reports a variant table line that cannot be parsed.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("variant table line %d: %s", e.Line, e.Message)
}

// ColumnIndices holds the indices of the required variant table columns.
type ColumnIndices struct {
	TranscriptName int
	HGVSp          int
}

// Parser reads variant records from a tab-delimited table with a header line.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    ColumnIndices
}

// NewParser creates a new variant table parser for the given file.
// Supports plain and gzipped files; "-" reads from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open variant table: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read variant table: %w", err)
	}

	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek variant table: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader reads the header line and resolves column indices.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return &ParseError{Line: p.lineNumber, Message: "no header line found"}
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		return p.parseColumnIndices(line)
	}
}

func (p *Parser) parseColumnIndices(headerLine string) error {
	p.columns = ColumnIndices{TranscriptName: -1, HGVSp: -1}

	for i, col := range strings.Split(headerLine, "\t") {
		switch col {
		case ColTranscriptName:
			p.columns.TranscriptName = i
		case ColHGVSp:
			p.columns.HGVSp = i
		}
	}

	if p.columns.TranscriptName < 0 {
		return &ParseError{Line: p.lineNumber, Message: "missing transcript_name column"}
	}
	if p.columns.HGVSp < 0 {
		return &ParseError{Line: p.lineNumber, Message: "missing HGVSp column"}
	}
	return nil
}

// Next returns the next variant record, or nil at end of input.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		fields := strings.Split(line, "\t")
		need := p.columns.TranscriptName
		if p.columns.HGVSp > need {
			need = p.columns.HGVSp
		}
		if len(fields) <= need {
			return nil, &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("expected at least %d columns, got %d", need+1, len(fields)),
			}
		}

		return &Record{
			TranscriptName: fields[p.columns.TranscriptName],
			HGVSp:          fields[p.columns.HGVSp],
			Line:           p.lineNumber,
		}, nil
	}
}

// ReadAll reads all remaining records.
func (p *Parser) ReadAll() ([]Record, error) {
	var records []Record
	for {
		r, err := p.Next()
		if err != nil {
			return nil, err
		}
		if r == nil {
			return records, nil
		}
		records = append(records, *r)
	}
}

// Close closes the underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
