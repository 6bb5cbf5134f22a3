package bed

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads CDS intervals from a 6-column BED file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewParser creates a new BED parser for the given file.
// Supports both plain and gzipped (.bed.gz) files; "-" reads from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bed file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read bed file: %w", err)
	}

	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek bed file: %w", err)
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

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next returns the next interval, or nil at end of input.
func (p *Parser) Next() (*Interval, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read bed line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		// Skip track/browser/comment lines and blanks
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		iv, perr := p.parseLine(line)
		if perr != nil {
			return nil, perr
		}
		return iv, nil
	}
}

// ReadAll reads all remaining intervals.
func (p *Parser) ReadAll() ([]Interval, error) {
	var intervals []Interval
	for {
		iv, err := p.Next()
		if err != nil {
			return nil, err
		}
		if iv == nil {
			return intervals, nil
		}
		intervals = append(intervals, *iv)
	}
}

func (p *Parser) parseLine(line string) (*Interval, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 6 {
		return nil, &FormatError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected 6 columns, got %d", len(fields)),
		}
	}

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &FormatError{Line: p.lineNumber, Message: "start is not an integer"}
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, &FormatError{Line: p.lineNumber, Message: "end is not an integer"}
	}
	if end < start {
		return nil, &FormatError{Line: p.lineNumber, Message: "end before start"}
	}

	iv := &Interval{
		Chrom: fields[0],
		Start: start,
		End:   end,
		CdsID: fields[3],
		Score: fields[4],
	}

	switch fields[5] {
	case "+":
		iv.Strand = '+'
	case "-":
		iv.Strand = '-'
	default:
		return nil, &InvalidStrandError{CdsID: iv.CdsID, Strand: fields[5]}
	}

	iv.Name, err = ParseCdsID(iv.CdsID)
	if err != nil {
		return nil, err
	}

	return iv, nil
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
