package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inodb/nmd-escape/internal/duckdb"
	"github.com/inodb/nmd-escape/internal/nmd"
)

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	var (
		bedFile    string
		outputPath string
		window     int64
	)

	fs.StringVar(&bedFile, "bed", "", "CDS BED file defining the transcripts")
	fs.StringVar(&outputPath, "output", "", "Output DuckDB file path")
	fs.StringVar(&outputPath, "o", "", "Output DuckDB file path (shorthand)")
	fs.Int64Var(&window, "window", configWindow(), "Escape window upstream of the last exon-exon junction (nt)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compute the derived NMD tables and store them in a DuckDB database.

The database holds transcript_sizes and nmd_boundaries tables for downstream
SQL queries and for joining against variant call tables.

Usage:
  nmd-escape convert [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Store both derived tables
  nmd-escape convert --bed cds.bed --output nmd.duckdb

  # Use a wider junction window
  nmd-escape convert --bed cds.bed -o nmd.duckdb --window 55
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if bedFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --bed is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if outputPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --output is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	// Ensure output has a database extension
	if filepath.Ext(outputPath) != ".duckdb" && filepath.Ext(outputPath) != ".db" {
		outputPath = outputPath + ".duckdb"
	}

	// Remove existing output file if it exists
	if _, err := os.Stat(outputPath); err == nil {
		if err := os.Remove(outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing existing file: %v\n", err)
			return ExitError
		}
	}

	transcripts, err := loadTranscripts(bedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	boundaries := make([]*nmd.Boundary, 0, len(transcripts))
	for _, t := range transcripts {
		boundaries = append(boundaries, nmd.EscapeBoundary(t, window))
	}
	sizes := nmd.ComputeAllSizes(transcripts, window)

	store, err := duckdb.Open(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer store.Close()

	if err := store.WriteSizes(sizes); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing sizes: %v\n", err)
		return ExitError
	}
	if err := store.WriteBoundaries(boundaries); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing boundaries: %v\n", err)
		return ExitError
	}

	fmt.Printf("Stored %d transcripts in %s\n", len(transcripts), outputPath)
	return ExitSuccess
}
