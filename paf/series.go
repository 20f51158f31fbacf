package paf

import (
	"math"

	"github.com/RyanBlaney/sonido-paf/algorithms/common"
	"github.com/RyanBlaney/sonido-paf/algorithms/spectral"
	"github.com/RyanBlaney/sonido-paf/paf/config"
)

type scanState int

const (
	scanContinue scanState = iota
	// scanStop ends the whole series: the band has no bin at this resolution
	scanStop
)

// SlidingFFTPeakSeries slides a params.WindowSec Hamming window over data
// and emits the in-band (config.WelchBand) peak of each single-window PSD.
// The scan ends at the first window whose spectrum has no bin in the band.
func SlidingFFTPeakSeries(data []float64, fs float64, params config.SamplingParameters) []PeakPoint {
	series := []PeakPoint{}
	if !(fs > 0) {
		return series
	}

	nPerSeg := spectral.SegmentLength(fs, params.WindowSec)
	step := spectral.Step(nPerSeg, params.Overlap)

	acc, err := spectral.NewPowerAccumulator(nPerSeg, fs)
	if err != nil {
		return series
	}

	for st := 0; st+nPerSeg <= len(data); st += step {
		point, state := fftWindowPeak(acc, data[st:st+nPerSeg], st, fs)
		if state == scanStop {
			break
		}
		series = append(series, point)
	}
	return series
}

func fftWindowPeak(acc *spectral.PowerAccumulator, window []float64, start int, fs float64) (PeakPoint, scanState) {
	acc.Reset()
	if err := acc.Add(window); err != nil {
		return PeakPoint{}, scanStop
	}

	psd := acc.Mean()
	idx, ok := spectral.BandPeak(psd, fs, acc.NFFT(), config.WelchBand)
	if !ok {
		return PeakPoint{}, scanStop
	}

	return PeakPoint{
		Time:   windowCentre(start, len(window), fs),
		PeakDB: spectral.ToDB(psd[idx]),
	}, scanContinue
}

// WelchPeakSeries slides a params.WindowSec block over data and emits the
// Welch-averaged in-band peak (params.SubWindowSec sub-windows) of each block.
// Blocks too short for a sub-window yield NaN points.
func WelchPeakSeries(data []float64, fs float64, params config.SamplingParameters) []PeakPoint {
	series := []PeakPoint{}
	if !(fs > 0) {
		return series
	}

	nWindow := spectral.SegmentLength(fs, params.WindowSec)
	step := spectral.Step(nWindow, params.Overlap)

	for st := 0; st+nWindow <= len(data); st += step {
		series = append(series, PeakPoint{
			Time:   windowCentre(st, nWindow, fs),
			PeakDB: WelchPeakDB(data[st:st+nWindow], fs, params.SubWindowSec, params.Overlap),
		})
	}
	return series
}

// windowCentre uses integer halving of the window length.
func windowCentre(start, length int, fs float64) float64 {
	return float64(start+length/2) / fs
}

// StrongestPoint returns the time of the highest PeakDB in series (first
// wins). NaN for an empty series or one holding only NaN powers.
func StrongestPoint(series []PeakPoint) float64 {
	powers := make([]float64, len(series))
	for i, p := range series {
		powers[i] = p.PeakDB
	}

	best := common.ArgMax(powers)
	if best < 0 {
		return math.NaN()
	}
	return series[best].Time
}
