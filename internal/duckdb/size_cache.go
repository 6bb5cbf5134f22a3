package duckdb

import (
	"encoding/gob"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/inodb/nmd-escape/internal/nmd"
)

// SizeCache manages gob-serialized size tables on disk, stored alongside the
// source BED file:
//
//	<cds.bed>.sizes.gob       (serialized size records)
//	<cds.bed>.sizes.gob.meta  (source fingerprint and window)
//
// Repeated annotate runs over the same BED skip the interval pass.
type SizeCache struct {
	bedPath string
}

// NewSizeCache creates a size cache for the given BED file.
func NewSizeCache(bedPath string) *SizeCache {
	return &SizeCache{bedPath: bedPath}
}

func (sc *SizeCache) gobPath() string {
	return sc.bedPath + ".sizes.gob"
}

func (sc *SizeCache) metaPath() string {
	return sc.bedPath + ".sizes.gob.meta"
}

// Valid checks whether the cached sizes match the current BED file and window.
func (sc *SizeCache) Valid(bed FileFingerprint, window int64) bool {
	meta, err := sc.readMeta()
	if err != nil {
		return false
	}

	checks := []struct{ key, val string }{
		{"bed_size", strconv.FormatInt(bed.Size, 10)},
		{"bed_modtime", bed.ModTime.UTC().Format(time.RFC3339Nano)},
		{"window", strconv.FormatInt(window, 10)},
	}

	for _, c := range checks {
		if meta[c.key] != c.val {
			return false
		}
	}

	if _, err := os.Stat(sc.gobPath()); err != nil {
		return false
	}
	return true
}

// Load reads serialized size records from disk.
func (sc *SizeCache) Load() ([]nmd.Sizes, error) {
	f, err := os.Open(sc.gobPath())
	if err != nil {
		return nil, fmt.Errorf("open size cache: %w", err)
	}
	defer f.Close()

	var sizes []nmd.Sizes
	if err := gob.NewDecoder(f).Decode(&sizes); err != nil {
		return nil, fmt.Errorf("decode size cache: %w", err)
	}
	return sizes, nil
}

// Write serializes size records to disk.
func (sc *SizeCache) Write(sizes []nmd.Sizes, bed FileFingerprint, window int64) error {
	f, err := os.Create(sc.gobPath())
	if err != nil {
		return fmt.Errorf("create size cache: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(sizes); err != nil {
		f.Close()
		os.Remove(sc.gobPath())
		return fmt.Errorf("encode size cache: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close size cache: %w", err)
	}

	return sc.writeMeta(bed, window)
}

// Clear removes the cached size files.
func (sc *SizeCache) Clear() {
	os.Remove(sc.gobPath())
	os.Remove(sc.metaPath())
}

func (sc *SizeCache) writeMeta(bed FileFingerprint, window int64) error {
	lines := []string{
		"bed_size=" + strconv.FormatInt(bed.Size, 10),
		"bed_modtime=" + bed.ModTime.UTC().Format(time.RFC3339Nano),
		"window=" + strconv.FormatInt(window, 10),
		"created_at=" + time.Now().UTC().Format(time.RFC3339),
		"",
	}
	return os.WriteFile(sc.metaPath(), []byte(strings.Join(lines, "\n")), 0644)
}

func (sc *SizeCache) readMeta() (map[string]string, error) {
	data, err := os.ReadFile(sc.metaPath())
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			meta[k] = v
		}
	}
	return meta, nil
}
