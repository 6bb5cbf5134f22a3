// Package main provides the nmd-escape command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inodb/nmd-escape/internal/bed"
	"github.com/inodb/nmd-escape/internal/nmd"
	"github.com/inodb/nmd-escape/internal/output"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("nmd-escape version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "boundaries":
		return runBoundaries(args[1:])
	case "sizes":
		return runSizes(args[1:])
	case "annotate":
		return runAnnotate(args[1:])
	case "convert":
		return runConvert(args[1:])
	case "download":
		return runDownload(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `nmd-escape - NMD escape regions and frameshift classification

Usage:
  nmd-escape [options] <command> [arguments]

Commands:
  boundaries  Compute NMD escape boundary regions from a CDS BED file
  sizes       Compute per-transcript CDS and NMD region sizes
  annotate    Classify frameshift variants as NMD-escaping or NMD-triggering
  convert     Store derived tables in a DuckDB database
  download    Download a RefSeq annotation export from UCSC
  config      Manage nmd-escape configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Escape regions for each transcript in a CDS BED file
  nmd-escape boundaries cds.bed

  # Per-transcript size table
  nmd-escape sizes -o sizes.tsv cds.bed

  # Classify variants against the transcripts in a BED file
  nmd-escape annotate --bed cds.bed variants.tsv

  # Persist the derived tables for downstream queries
  nmd-escape convert --bed cds.bed -o nmd.duckdb

For more information on a command, use:
  nmd-escape <command> --help
`)
}

// loadTranscripts reads a CDS BED file and groups it into transcripts.
func loadTranscripts(path string) ([]*nmd.Transcript, error) {
	parser, err := bed.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	intervals, err := parser.ReadAll()
	if err != nil {
		return nil, err
	}
	return nmd.BuildTranscripts(intervals)
}

// openOutput returns the output file, or stdout for an empty path.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runBoundaries(args []string) int {
	fs := flag.NewFlagSet("boundaries", flag.ExitOnError)

	var (
		outputFile string
		window     int64
		strict     bool
	)

	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.Int64Var(&window, "window", configWindow(), "Escape window upstream of the last exon-exon junction (nt)")
	fs.BoolVar(&strict, "strict", false, "Fail on transcripts with a single coding exon")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compute NMD escape boundary regions per transcript.

Usage:
  nmd-escape boundaries [options] <cds.bed>

Arguments:
  <cds.bed>  6-column CDS BED file (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  nmd-escape boundaries cds.bed
  nmd-escape boundaries -o nmd_regions.bed cds.bed
  nmd-escape boundaries --window 55 cds.bed
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: CDS BED file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	transcripts, err := loadTranscripts(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	out, closeOut, err := openOutput(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer closeOut()

	writer := output.NewBoundaryWriter(out)
	if err := writer.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}

	for _, t := range transcripts {
		if strict {
			if err := nmd.RequireExons(t, 2); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return ExitError
			}
		}
		if err := writer.Write(nmd.EscapeBoundary(t, window)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing boundary: %v\n", err)
			return ExitError
		}
	}

	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func runSizes(args []string) int {
	fs := flag.NewFlagSet("sizes", flag.ExitOnError)

	var (
		outputFile string
		window     int64
	)

	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.Int64Var(&window, "window", configWindow(), "Escape window upstream of the last exon-exon junction (nt)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compute per-transcript CDS and NMD region sizes.

Usage:
  nmd-escape sizes [options] <cds.bed>

Arguments:
  <cds.bed>  6-column CDS BED file (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  nmd-escape sizes cds.bed
  nmd-escape sizes -o sizes.tsv cds.bed
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: CDS BED file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	transcripts, err := loadTranscripts(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	out, closeOut, err := openOutput(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer closeOut()

	writer := output.NewSizesWriter(out)
	if err := writer.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}

	for _, s := range nmd.ComputeAllSizes(transcripts, window) {
		if err := writer.Write(s); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing sizes: %v\n", err)
			return ExitError
		}
	}

	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
