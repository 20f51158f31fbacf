package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-paf/internal/testutil"
	"github.com/RyanBlaney/sonido-paf/paf"
	"github.com/RyanBlaney/sonido-paf/paf/config"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

func writeZip(t *testing.T, entries map[string]string, order []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCSVLenient(t *testing.T) {
	in := "a,b,c\n1,2 \"x\",3\n4,5\n"
	rows, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d want 3", len(rows))
	}
	if rows[1][1] != `2 "x"` || len(rows[2]) != 2 {
		t.Fatalf("rows=%q", rows)
	}
}

func TestDetectKind(t *testing.T) {
	tests := map[string]string{
		"muse.ZIP":      KindZip,
		"muse.csv.gz":   KindGzipCSV,
		"muse.csv":      KindCSV,
		"recording.txt": KindCSV,
	}
	for path, want := range tests {
		if got := DetectKind(path); got != want {
			t.Errorf("DetectKind(%q)=%q want %q", path, got, want)
		}
	}
}

func TestReadArchivePicksFirstCSV(t *testing.T) {
	path := writeZip(t, map[string]string{
		"readme.txt": "not data",
		"first.csv":  "h\n1\n",
		"second.csv": "h\n2\n",
	}, []string{"readme.txt", "first.csv", "second.csv"})

	rows, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive error: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "1" {
		t.Fatalf("rows=%v", rows)
	}
}

func TestReadArchiveWithoutCSV(t *testing.T) {
	path := writeZip(t, map[string]string{"notes.txt": "x"}, []string{"notes.txt"})
	if _, err := ReadArchive(path); !errors.Is(err, ErrNoCSV) {
		t.Fatalf("err=%v want ErrNoCSV", err)
	}
}

func TestLoadArchiveEndToEnd(t *testing.T) {
	rec := testutil.SineHeadband(64, 60, 10, 10, 5)
	path := writeZip(t, map[string]string{"museMonitor.csv": rec.CSV()}, []string{"museMonitor.csv"})

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(rows) != 64*60+1 {
		t.Fatalf("rows=%d", len(rows))
	}

	res, err := paf.Analyze(rows, config.DefaultSamplingParameters())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.FS != 64 {
		t.Fatalf("fs=%v want 64", res.FS)
	}
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("h1,h2\n1,2\n")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "2" {
		t.Fatalf("rows=%v", rows)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error")
	}
}
