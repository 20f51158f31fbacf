// Package export writes peak series and analysis reports for external
// charting and archiving.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-paf/paf"
	"github.com/parquet-go/parquet-go"
)

// Series names used in every output format.
const (
	SeriesFFTLeft    = "fft_left"
	SeriesFFTRight   = "fft_right"
	SeriesWelchLeft  = "welch_left"
	SeriesWelchRight = "welch_right"
)

// SeriesRow is one exported point.
type SeriesRow struct {
	Series string  `parquet:"series,dict"`
	Time   float64 `parquet:"time"`
	PeakDB float64 `parquet:"peak_db"`
}

// Rows flattens s into rows ordered FFT left, FFT right, Welch left, Welch
// right.
func Rows(s paf.Series) []SeriesRow {
	named := []struct {
		name   string
		points []paf.PeakPoint
	}{
		{SeriesFFTLeft, s.FFTLeft},
		{SeriesFFTRight, s.FFTRight},
		{SeriesWelchLeft, s.WelchLeft},
		{SeriesWelchRight, s.WelchRight},
	}

	var rows []SeriesRow
	for _, n := range named {
		for _, p := range n.points {
			rows = append(rows, SeriesRow{Series: n.name, Time: p.Time, PeakDB: p.PeakDB})
		}
	}
	return rows
}

// WriteSeries writes s to path in the format named by its extension:
// .csv, .json or .parquet.
func WriteSeries(path string, s paf.Series) error {
	var write func(io.Writer, paf.Series) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = WriteSeriesCSV
	case ".json":
		write = WriteSeriesJSON
	case ".parquet":
		write = WriteSeriesParquet
	default:
		return fmt.Errorf("unsupported series format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create series file: %w", err)
	}
	if err := write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSeriesCSV writes a "series,time,peak_db" table. NaN powers are
// written as "NaN".
func WriteSeriesCSV(w io.Writer, s paf.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"series", "time", "peak_db"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range Rows(s) {
		record := []string{
			r.Series,
			strconv.FormatFloat(r.Time, 'f', -1, 64),
			strconv.FormatFloat(r.PeakDB, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type pointJSON struct {
	Time   float64  `json:"time"`
	PeakDB *float64 `json:"peak_db"`
}

type seriesJSON struct {
	FFTLeft    []pointJSON `json:"fft_left"`
	FFTRight   []pointJSON `json:"fft_right"`
	WelchLeft  []pointJSON `json:"welch_left"`
	WelchRight []pointJSON `json:"welch_right"`
}

func newSeriesJSON(s paf.Series) seriesJSON {
	return seriesJSON{
		FFTLeft:    pointsJSON(s.FFTLeft),
		FFTRight:   pointsJSON(s.FFTRight),
		WelchLeft:  pointsJSON(s.WelchLeft),
		WelchRight: pointsJSON(s.WelchRight),
	}
}

func pointsJSON(points []paf.PeakPoint) []pointJSON {
	out := make([]pointJSON, len(points))
	for i, p := range points {
		out[i] = pointJSON{Time: p.Time, PeakDB: finite(p.PeakDB)}
	}
	return out
}

// finite maps NaN and infinities to nil so they encode as JSON null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// WriteSeriesJSON writes the four series as one JSON object keyed by series
// name. NaN powers become null.
func WriteSeriesJSON(w io.Writer, s paf.Series) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newSeriesJSON(s)); err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	return nil
}

// WriteSeriesParquet writes Rows(s) as a Snappy-compressed Parquet file.
func WriteSeriesParquet(w io.Writer, s paf.Series) error {
	pw := parquet.NewGenericWriter[SeriesRow](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(Rows(s)); err != nil {
		return fmt.Errorf("parquet write: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("parquet close: %w", err)
	}
	return nil
}
