// Package ingest turns headband exports on disk into raw CSV rows.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/sonido-paf/logging"
	"github.com/RyanBlaney/sonido-paf/paf"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// ErrNoCSV is returned when an archive holds no entry ending in ".csv".
var ErrNoCSV = errors.New("no CSV found in ZIP")

// Source kinds recognized by Load.
const (
	KindCSV     = "csv"
	KindGzipCSV = "csv.gz"
	KindZip     = "zip"
)

// DetectKind maps a file name to its source kind. Unknown extensions are
// read as plain CSV.
func DetectKind(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return KindZip
	case strings.HasSuffix(lower, ".gz"):
		return KindGzipCSV
	default:
		return KindCSV
	}
}

// ReadCSV tokenizes r into rows. Quotes are parsed leniently and rows may
// differ in length; the header row is returned like any other.
func ReadCSV(r io.Reader) ([]paf.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []paf.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// ReadArchive opens the ZIP at path and reads the first entry whose name
// ends in ".csv".
func ReadArchive(path string) ([]paf.RawRow, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".csv") {
			continue
		}

		logging.Debug("Reading archive entry", logging.Fields{
			"archive": filepath.Base(path),
			"entry":   f.Name,
			"size":    f.UncompressedSize64,
		})

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %s: %w", f.Name, err)
		}
		rows, err := ReadCSV(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Name, err)
		}
		return rows, nil
	}
	return nil, ErrNoCSV
}

// ReadGzip reads a gzip-compressed CSV file.
func ReadGzip(path string) ([]paf.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	return ReadCSV(gz)
}

// Load reads the rows of path, dispatching on DetectKind.
func Load(path string) ([]paf.RawRow, error) {
	switch DetectKind(path) {
	case KindZip:
		return ReadArchive(path)
	case KindGzipCSV:
		return ReadGzip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}
