package paf

import (
	"context"
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-paf/logging"
	"github.com/RyanBlaney/sonido-paf/paf/config"
)

// Analyzer runs the peak alpha frequency pipeline with a fixed set of
// sampling parameters. An Analyzer is immutable and safe for concurrent use.
type Analyzer struct {
	params config.SamplingParameters
	detect UnitDetector
	logger logging.Logger
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithUnitDetector replaces DetectMillis for numeric timestamp columns.
func WithUnitDetector(detect UnitDetector) Option {
	return func(a *Analyzer) {
		if detect != nil {
			a.detect = detect
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(logger logging.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an analyzer for params.
func NewAnalyzer(params config.SamplingParameters, opts ...Option) (*Analyzer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling parameters: %w", err)
	}

	a := &Analyzer{
		params: params,
		detect: DetectMillis,
		logger: logging.WithFields(logging.Fields{
			"component":      "paf_analyzer",
			"window_sec":     params.WindowSec,
			"sub_window_sec": params.SubWindowSec,
			"overlap":        params.Overlap,
		}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// WithContext returns a copy whose logger carries the fields stored in ctx.
func (a *Analyzer) WithContext(ctx context.Context) *Analyzer {
	return &Analyzer{
		params: a.params,
		detect: a.detect,
		logger: a.logger.WithContext(ctx),
	}
}

// Params returns the sampling parameters.
func (a *Analyzer) Params() config.SamplingParameters {
	return a.params
}

// Analyze runs filtering, timestamp normalization, rate estimation,
// trimming, resampling and both spectral estimators over all (header row
// first). Unsatisfiable input yields a *CSVFormatError.
func (a *Analyzer) Analyze(all []RawRow) (*Result, error) {
	logger := a.logger.WithFields(logging.Fields{
		"function": "Analyze",
		"rows":     len(all),
	})

	res, err := a.analyze(all, logger)
	if err != nil {
		var formatErr *CSVFormatError
		if errors.As(err, &formatErr) {
			logger.Warn("Rejected recording: " + formatErr.Error())
		} else {
			logger.Error(err, "Analysis failed")
		}
		return nil, err
	}

	logger.Info("Analysis completed", logging.Fields{
		"fs":         res.FS,
		"duration":   res.Duration,
		"welch_mean": res.Welch.Mean,
		"fft_mean":   res.FFT.Mean,
	})
	return res, nil
}

func (a *Analyzer) analyze(all []RawRow, logger logging.Logger) (*Result, error) {
	rows, err := FilterRows(all)
	if err != nil {
		return nil, err
	}

	stamps, left, right, err := extractColumns(rows)
	if err != nil {
		return nil, err
	}

	times, err := NormalizeTimestampsWith(stamps, a.detect)
	if err != nil {
		return nil, err
	}

	fs, dt, err := EstimateSampleRate(times)
	if err != nil {
		return nil, err
	}
	logger.Debug("Estimated sample rate", logging.Fields{
		"valid_rows": len(rows),
		"fs":         fs,
		"dt":         dt,
	})

	seg, err := TrimSegment(Recording{Times: times, Left: left, Right: right})
	if err != nil {
		return nil, err
	}

	resLeft, resRight, duration, err := Resample(seg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resampled trimmed segment", logging.Fields{
		"segment_rows": seg.Len(),
		"samples":      len(resLeft.Values),
		"duration":     duration,
	})

	return Aggregate(fs, duration,
		a.estimateChannel(resLeft.Values, fs),
		a.estimateChannel(resRight.Values, fs),
	), nil
}

func (a *Analyzer) estimateChannel(samples []float64, fs float64) ChannelEstimate {
	freq, binTime := FFTPeak(samples, fs)
	return ChannelEstimate{
		FFTPeak:   freq,
		FFTTime:   binTime,
		WelchPeak: WelchPeak(samples, fs, a.params),
		Samples:   samples,
	}
}

// Series derives the four peak series from res.
func (a *Analyzer) Series(res *Result) Series {
	s := Series{
		FFTLeft:    SlidingFFTPeakSeries(res.RawLeft, res.FS, a.params),
		FFTRight:   SlidingFFTPeakSeries(res.RawRight, res.FS, a.params),
		WelchLeft:  WelchPeakSeries(res.RawLeft, res.FS, a.params),
		WelchRight: WelchPeakSeries(res.RawRight, res.FS, a.params),
	}

	a.logger.Debug("Generated peak series", logging.Fields{
		"function":     "Series",
		"fft_points":   len(s.FFTLeft),
		"welch_points": len(s.WelchLeft),
	})
	return s
}

// Report analyzes all and derives the series and their strongest points.
func (a *Analyzer) Report(all []RawRow) (*Report, error) {
	res, err := a.Analyze(all)
	if err != nil {
		return nil, err
	}

	series := a.Series(res)
	return &Report{
		Result:         res,
		Series:         series,
		Params:         a.params,
		FFTTimeLeft:    StrongestPoint(series.FFTLeft),
		FFTTimeRight:   StrongestPoint(series.FFTRight),
		WelchTimeLeft:  StrongestPoint(series.WelchLeft),
		WelchTimeRight: StrongestPoint(series.WelchRight),
	}, nil
}

// Analyze is a convenience wrapper around NewAnalyzer(params, opts...).Analyze(all).
func Analyze(all []RawRow, params config.SamplingParameters, opts ...Option) (*Result, error) {
	a, err := NewAnalyzer(params, opts...)
	if err != nil {
		return nil, err
	}
	return a.Analyze(all)
}
