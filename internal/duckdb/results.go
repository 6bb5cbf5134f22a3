package duckdb

import (
	"fmt"

	"github.com/inodb/nmd-escape/internal/nmd"
	"github.com/inodb/nmd-escape/internal/variant"
)

// resultKey is the composite key for deduplicating results before writing.
type resultKey struct {
	transcriptName, hgvsp string
}

// WriteResults batch-inserts classification results using the Appender API.
// Duplicate (transcript_name, hgvsp) entries are deduplicated before writing.
func (s *Store) WriteResults(results []nmd.Result) error {
	if len(results) == 0 {
		return nil
	}

	seen := make(map[resultKey]bool, len(results))
	deduped := make([]nmd.Result, 0, len(results))
	for _, r := range results {
		k := resultKey{r.TranscriptName, r.HGVSp}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	appender, conn, err := s.appender("frameshift_results")
	if err != nil {
		return err
	}
	defer conn.Close()
	defer appender.Close()

	for _, r := range deduped {
		errMsg := ""
		if r.Err != nil {
			errMsg = r.Err.Error()
		}
		if err := appender.AppendRow(
			r.TranscriptName, r.HGVSp, r.StopProteinPos, r.StopNtStart,
			string(r.Class), errMsg,
		); err != nil {
			return fmt.Errorf("append result: %w", err)
		}
	}

	return appender.Flush()
}

// ClearResults removes all stored classification results.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM frameshift_results")
	return err
}

// SearchByClass returns stored results with the given classification.
func (s *Store) SearchByClass(class nmd.Class) ([]nmd.Result, error) {
	rows, err := s.db.Query(`SELECT
		transcript_name, hgvsp, stop_pdot, stop_nt_start, nmd_class
		FROM frameshift_results
		WHERE nmd_class = ?
		ORDER BY transcript_name, hgvsp`, string(class))
	if err != nil {
		return nil, fmt.Errorf("query by class: %w", err)
	}
	defer rows.Close()

	var results []nmd.Result
	for rows.Next() {
		var r nmd.Result
		var class string
		if err := rows.Scan(
			&r.TranscriptName, &r.HGVSp, &r.StopProteinPos, &r.StopNtStart, &class,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Class = nmd.Class(class)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// LoadVariants reads variant records from a "variants" table
// (transcript_name, hgvsp), e.g. one produced by an upstream pipeline.
// Row order follows the table's insertion order via DuckDB's rowid.
func (s *Store) LoadVariants() ([]variant.Record, error) {
	rows, err := s.db.Query(`SELECT transcript_name, hgvsp FROM variants ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	var records []variant.Record
	line := 0
	for rows.Next() {
		line++
		var r variant.Record
		if err := rows.Scan(&r.TranscriptName, &r.HGVSp); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		r.Line = line
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return records, nil
}
