package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/RyanBlaney/sonido-paf/paf"
	"github.com/RyanBlaney/sonido-paf/paf/config"
)

// Meta identifies where a report came from.
type Meta struct {
	RunID  string
	Source string
}

type estimateJSON struct {
	Left   *float64 `json:"left"`
	Right  *float64 `json:"right"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
}

type strongestJSON struct {
	FFTLeft    *float64 `json:"fft_left"`
	FFTRight   *float64 `json:"fft_right"`
	WelchLeft  *float64 `json:"welch_left"`
	WelchRight *float64 `json:"welch_right"`
}

type reportJSON struct {
	RunID    string                    `json:"run_id,omitempty"`
	Source   string                    `json:"source,omitempty"`
	FS       *float64                  `json:"fs"`
	Duration *float64                  `json:"duration"`
	Welch    estimateJSON              `json:"welch"`
	FFT      estimateJSON              `json:"fft"`
	FFTBin   [2]*float64               `json:"fft_bin_time"`
	Peaks    strongestJSON             `json:"strongest_point_time"`
	Params   config.SamplingParameters `json:"params"`
	Notes    string                    `json:"notes"`
	Series   *seriesJSON               `json:"series,omitempty"`
}

func newEstimateJSON(e paf.Estimate) estimateJSON {
	return estimateJSON{
		Left:   finite(e.Left),
		Right:  finite(e.Right),
		Mean:   finite(e.Mean),
		Median: finite(e.Median),
	}
}

// WriteReportJSON writes report as an indented JSON object without the
// resampled channels. Non-finite numbers become null. The series are
// included when withSeries is set.
func WriteReportJSON(w io.Writer, report *paf.Report, meta Meta, withSeries bool) error {
	res := report.Result
	doc := reportJSON{
		RunID:    meta.RunID,
		Source:   meta.Source,
		FS:       finite(res.FS),
		Duration: finite(res.Duration),
		Welch:    newEstimateJSON(res.Welch),
		FFT:      newEstimateJSON(res.FFT),
		FFTBin:   [2]*float64{finite(res.TimeLeft), finite(res.TimeRight)},
		Peaks: strongestJSON{
			FFTLeft:    finite(report.FFTTimeLeft),
			FFTRight:   finite(report.FFTTimeRight),
			WelchLeft:  finite(report.WelchTimeLeft),
			WelchRight: finite(report.WelchTimeRight),
		},
		Params: report.Params,
		Notes:  report.Notes(),
	}
	if withSeries {
		s := newSeriesJSON(report.Series)
		doc.Series = &s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
