package paf

import "github.com/RyanBlaney/sonido-paf/paf/config"

// RawRow is one tokenized CSV record.
type RawRow []string

// TimeSeries pairs sample times (seconds from the recording start) with
// channel values of the same length.
type TimeSeries struct {
	Times  []float64
	Values []float64
}

// Recording holds the row-aligned columns used by the pipeline. Times are
// in row order and may contain duplicates or inversions.
type Recording struct {
	Times []float64
	Left  []float64
	Right []float64
}

// Len returns the number of samples.
func (r Recording) Len() int {
	return len(r.Times)
}

// PeakPoint is one sample of a time-resolved peak-power series.
type PeakPoint struct {
	Time   float64 // window centre, seconds
	PeakDB float64 // band peak power, dB
}

// Estimate is one strategy's per-channel result and its two-channel summaries.
type Estimate struct {
	Left   float64
	Right  float64
	Mean   float64
	Median float64
}

// ChannelEstimate collects what the pipeline derives for a single channel.
type ChannelEstimate struct {
	FFTPeak   float64 // Hz
	FFTTime   float64 // bin index / fs, see FFTPeak
	WelchPeak float64 // Hz
	Samples   []float64
}

// Result is the outcome of one analysis run.
type Result struct {
	FS       float64 // effective sample rate, Hz
	Duration float64 // resampled segment span, seconds

	FFT       Estimate
	TimeLeft  float64
	TimeRight float64

	Welch Estimate

	// resampled channels, kept for series generation
	RawLeft  []float64
	RawRight []float64
}

// Series holds the four time-resolved peak series of a result.
type Series struct {
	FFTLeft    []PeakPoint
	FFTRight   []PeakPoint
	WelchLeft  []PeakPoint
	WelchRight []PeakPoint
}

// Report bundles a result with its series and the time of the strongest
// point of each series (NaN for an empty series).
type Report struct {
	Result *Result
	Series Series
	Params config.SamplingParameters

	FFTTimeLeft    float64
	FFTTimeRight   float64
	WelchTimeLeft  float64
	WelchTimeRight float64
}
