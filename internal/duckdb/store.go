// Package duckdb persists derived NMD tables and classification results.
// Size tables computed from a BED file are additionally cached as gob files
// (fast, pure Go); everything else lives in DuckDB (queryable, append-only).
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding the derived NMD tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcript_sizes (
		transcript_name VARCHAR PRIMARY KEY,
		cds_size BIGINT,
		nmd_escape_size BIGINT,
		nmd_decay_size BIGINT,
		total_pdot_length BIGINT,
		nmd_pdot_start DOUBLE
	);

	CREATE TABLE IF NOT EXISTS nmd_boundaries (
		transcript_name VARCHAR,
		region_index INTEGER,
		chrom VARCHAR,
		start BIGINT,
		end_ BIGINT,
		strand VARCHAR,
		boundary_pos BIGINT,
		PRIMARY KEY (transcript_name, region_index)
	);

	CREATE TABLE IF NOT EXISTS frameshift_results (
		transcript_name VARCHAR,
		hgvsp VARCHAR,
		stop_pdot BIGINT,
		stop_nt_start BIGINT,
		nmd_class VARCHAR,
		error VARCHAR,
		PRIMARY KEY (transcript_name, hgvsp)
	)`)
	return err
}
