package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/nmd-escape/internal/duckdb"
	"github.com/inodb/nmd-escape/internal/nmd"
	"github.com/inodb/nmd-escape/internal/output"
	"github.com/inodb/nmd-escape/internal/variant"
)

func runAnnotate(args []string) int {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)

	var (
		bedFile    string
		variantsDB string
		outputFile string
		outputDB   string
		window     int64
		noCache    bool
	)

	fs.StringVar(&bedFile, "bed", "", "CDS BED file defining the transcripts")
	fs.StringVar(&variantsDB, "variants-db", "", "Read variants from a DuckDB database instead of a TSV")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.StringVar(&outputDB, "output-db", "", "Also store results in a DuckDB database")
	fs.Int64Var(&window, "window", configWindow(), "Escape window upstream of the last exon-exon junction (nt)")
	fs.BoolVar(&noCache, "no-cache", false, "Recompute sizes even when a valid size cache exists")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Classify truncating frameshift variants as NMD-escaping or NMD-triggering.

Variants are joined to the BED file's transcripts by accession; the HGVSp
notation locates the introduced stop codon.

Usage:
  nmd-escape annotate --bed <cds.bed> [options] <variants.tsv>
  nmd-escape annotate --bed <cds.bed> --variants-db <file.duckdb>

Arguments:
  <variants.tsv>  Tab-delimited table with transcript_name and HGVSp columns
                  (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  nmd-escape annotate --bed cds.bed variants.tsv
  nmd-escape annotate --bed cds.bed -o annotated.tsv variants.tsv
  nmd-escape annotate --bed cds.bed --variants-db calls.duckdb --output-db results.duckdb
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
	if variantsDB == "" && fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: variant table argument or --variants-db required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	sizes, err := loadSizes(bedFile, window, noCache, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	// Load variants
	var records []variant.Record
	if variantsDB != "" {
		store, err := duckdb.Open(variantsDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		records, err = store.LoadVariants()
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	} else {
		parser, err := variant.NewParser(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		records, err = parser.ReadAll()
		parser.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}

	ann := nmd.NewAnnotator(sizes)
	ann.SetLogger(logger)
	results := ann.Annotate(records)

	out, closeOut, err := openOutput(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer closeOut()

	writer := output.NewResultWriter(out)
	if err := writer.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}
	for i := range results {
		if err := writer.Write(&results[i]); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
			return ExitError
		}
	}
	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}

	if outputDB != "" {
		store, err := duckdb.Open(outputDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer store.Close()
		if err := store.WriteResults(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error storing results: %v\n", err)
			return ExitError
		}
	}

	return ExitSuccess
}

// loadSizes computes the size table for a BED file, using the gob size cache
// next to the BED when it is still valid.
func loadSizes(bedFile string, window int64, noCache bool, logger *zap.Logger) ([]nmd.Sizes, error) {
	cache := duckdb.NewSizeCache(bedFile)

	fp, statErr := duckdb.StatFile(bedFile)
	if !noCache && statErr == nil && cache.Valid(fp, window) {
		sizes, err := cache.Load()
		if err == nil {
			logger.Info("using cached size table",
				zap.String("bed", bedFile),
				zap.Int("transcripts", len(sizes)))
			return sizes, nil
		}
		logger.Warn("size cache unreadable, recomputing", zap.Error(err))
	}

	transcripts, err := loadTranscripts(bedFile)
	if err != nil {
		return nil, err
	}
	sizes := nmd.ComputeAllSizes(transcripts, window)

	if statErr == nil {
		if err := cache.Write(sizes, fp, window); err != nil {
			logger.Warn("could not write size cache", zap.Error(err))
		}
	}
	return sizes, nil
}
