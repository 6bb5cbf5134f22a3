package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UCSC download server
const ucscBaseURL = "https://hgdownload.soe.ucsc.edu/goldenPath"

// getRefSeqURL returns the RefSeq annotation URL for the given assembly.
func getRefSeqURL(assembly string) string {
	db := "hg38"
	switch strings.ToUpper(assembly) {
	case "GRCH37":
		db = "hg19"
	case "GRCH38":
		db = "hg38"
	}
	return fmt.Sprintf("%s/%s/bigZips/genes/%s.ncbiRefSeq.gtf.gz", ucscBaseURL, db, db)
}

func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	var (
		assembly  string
		outputDir string
	)

	fs.StringVar(&assembly, "assembly", "GRCh38", "Genome assembly: GRCh37 or GRCh38")
	fs.StringVar(&outputDir, "output", "", "Output directory (default: ~/.nmd-escape/)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Download the UCSC RefSeq annotation export for building a CDS BED file.

Usage:
  nmd-escape download [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Download GRCh38 annotations (default)
  nmd-escape download

  # Download GRCh37 annotations
  nmd-escape download --assembly GRCh37

  # Download to a custom directory
  nmd-escape download --output /data/refseq

The downloaded GTF can be reduced to the 6-column CDS BED this tool consumes
with standard tooling (e.g. gtfToGenePred + genePredToBed, or the UCSC Table
Browser CDS export).
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if outputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine home directory: %v\n", err)
			return ExitError
		}
		outputDir = filepath.Join(home, ".nmd-escape")
	}

	destDir := filepath.Join(outputDir, strings.ToLower(assembly))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create directory %s: %v\n", destDir, err)
		return ExitError
	}

	url := getRefSeqURL(assembly)
	destFile := filepath.Join(destDir, filepath.Base(url))

	fmt.Printf("Downloading RefSeq annotations for %s...\n", assembly)
	fmt.Printf("Destination: %s\n\n", destFile)

	if err := downloadFile(url, destFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error downloading annotations: %v\n", err)
		return ExitError
	}

	fmt.Println("Download complete.")
	return ExitSuccess
}

// downloadFile downloads a URL to a local file, writing to a temporary file
// first so an interrupted download never leaves a partial file behind.
func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 30 * time.Minute}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	return os.Rename(tmp, dest)
}
