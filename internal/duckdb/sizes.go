package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/nmd-escape/internal/nmd"
)

// appender creates a DuckDB appender for the given table on a fresh
// connection. The caller must Close both.
func (s *Store) appender(table string) (*goduckdb.Appender, *sql.Conn, error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create appender: %w", err)
	}
	return appender, conn, nil
}

// WriteSizes batch-inserts size records using the Appender API.
func (s *Store) WriteSizes(sizes []nmd.Sizes) error {
	if len(sizes) == 0 {
		return nil
	}

	appender, conn, err := s.appender("transcript_sizes")
	if err != nil {
		return err
	}
	defer conn.Close()
	defer appender.Close()

	for _, sz := range sizes {
		if err := appender.AppendRow(
			sz.TranscriptName, sz.CDSLength, sz.EscapeLength,
			sz.DecayLength, sz.ProteinLength, sz.EscapeProteinStart,
		); err != nil {
			return fmt.Errorf("append size record: %w", err)
		}
	}

	return appender.Flush()
}

// LoadSizes reads all size records, ordered by transcript name.
func (s *Store) LoadSizes() ([]nmd.Sizes, error) {
	rows, err := s.db.Query(`SELECT
		transcript_name, cds_size, nmd_escape_size, nmd_decay_size,
		total_pdot_length, nmd_pdot_start
		FROM transcript_sizes
		ORDER BY transcript_name`)
	if err != nil {
		return nil, fmt.Errorf("query sizes: %w", err)
	}
	defer rows.Close()

	var sizes []nmd.Sizes
	for rows.Next() {
		var sz nmd.Sizes
		if err := rows.Scan(
			&sz.TranscriptName, &sz.CDSLength, &sz.EscapeLength,
			&sz.DecayLength, &sz.ProteinLength, &sz.EscapeProteinStart,
		); err != nil {
			return nil, fmt.Errorf("scan size record: %w", err)
		}
		sizes = append(sizes, sz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sizes: %w", err)
	}
	return sizes, nil
}

// WriteBoundaries batch-inserts boundary regions, one row per escape-region
// span in transcript-reading order.
func (s *Store) WriteBoundaries(boundaries []*nmd.Boundary) error {
	if len(boundaries) == 0 {
		return nil
	}

	appender, conn, err := s.appender("nmd_boundaries")
	if err != nil {
		return err
	}
	defer conn.Close()
	defer appender.Close()

	for _, b := range boundaries {
		for i, r := range b.Regions {
			if err := appender.AppendRow(
				b.TranscriptName, int32(i), r.Chrom, r.Start, r.End,
				string(b.Strand), b.BoundaryPos,
			); err != nil {
				return fmt.Errorf("append boundary region: %w", err)
			}
		}
	}

	return appender.Flush()
}

// LookupBoundary returns the escape-region spans for one transcript in
// transcript-reading order, or nil if the transcript is not stored.
func (s *Store) LookupBoundary(transcriptName string) (*nmd.Boundary, error) {
	rows, err := s.db.Query(`SELECT
		chrom, start, end_, strand, boundary_pos
		FROM nmd_boundaries
		WHERE transcript_name = ?
		ORDER BY region_index`, transcriptName)
	if err != nil {
		return nil, fmt.Errorf("query boundary: %w", err)
	}
	defer rows.Close()

	var b *nmd.Boundary
	for rows.Next() {
		var r nmd.Region
		var strand string
		var boundaryPos int64
		if err := rows.Scan(&r.Chrom, &r.Start, &r.End, &strand, &boundaryPos); err != nil {
			return nil, fmt.Errorf("scan boundary region: %w", err)
		}
		if b == nil {
			b = &nmd.Boundary{
				TranscriptName: transcriptName,
				Chrom:          r.Chrom,
				Strand:         strand[0],
				BoundaryPos:    boundaryPos,
			}
		}
		b.Regions = append(b.Regions, r)
		b.EscapeLength += r.Size()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boundary regions: %w", err)
	}
	return b, nil
}
