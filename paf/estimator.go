package paf

import (
	"math"
	"math/cmplx"

	"github.com/RyanBlaney/sonido-paf/algorithms/spectral"
	"github.com/RyanBlaney/sonido-paf/paf/config"
)

// FFTPeak finds the strongest bin of an unwindowed, zero-padded FFT of the
// whole channel inside config.FFTBand. It returns the bin frequency and
// binIndex/fs.
//
// The second value is a frequency-bin index reinterpreted as seconds, not an
// event time; Result.TimeLeft and TimeRight carry it. Both values are NaN
// when no bin lies in the band.
func FFTPeak(data []float64, fs float64) (freq, binTime float64) {
	if !(fs > 0) {
		return math.NaN(), math.NaN()
	}

	spectrum, n := spectral.NewFFT().ComputePadded(data)

	magnitude := make([]float64, len(spectrum))
	for i, c := range spectrum {
		magnitude[i] = cmplx.Abs(c)
	}

	idx, ok := spectral.BandPeak(magnitude, fs, n, config.FFTBand)
	if !ok {
		return math.NaN(), math.NaN()
	}
	return spectral.BinFrequency(idx, fs, n), float64(idx) / fs
}

// WelchPeak returns the frequency of the strongest config.WelchBand bin of
// the Welch-averaged PSD of data, using sub-windows of params.WindowSec
// seconds. NaN when no sub-window fits or the band is empty.
func WelchPeak(data []float64, fs float64, params config.SamplingParameters) float64 {
	psd, nfft, ok := welchPSD(data, fs, params.WindowSec, params.Overlap)
	if !ok {
		return math.NaN()
	}

	idx, ok := spectral.BandPeak(psd, fs, nfft, config.WelchBand)
	if !ok {
		return math.NaN()
	}
	return spectral.BinFrequency(idx, fs, nfft)
}

// WelchPeakDB is WelchPeak over subWindowSec sub-windows returning the peak
// power in dB instead of its frequency.
func WelchPeakDB(block []float64, fs, subWindowSec, overlap float64) float64 {
	psd, nfft, ok := welchPSD(block, fs, subWindowSec, overlap)
	if !ok {
		return math.NaN()
	}
	return bandPeakDB(psd, fs, nfft)
}

func welchPSD(data []float64, fs, windowSec, overlap float64) ([]float64, int, bool) {
	if !(fs > 0) {
		return nil, 0, false
	}

	segLen := spectral.SegmentLength(fs, windowSec)
	psd, nfft, err := spectral.Welch(data, fs, segLen, spectral.Step(segLen, overlap))
	if err != nil || psd == nil {
		return nil, 0, false
	}
	return psd, nfft, true
}

func bandPeakDB(psd []float64, fs float64, nfft int) float64 {
	idx, ok := spectral.BandPeak(psd, fs, nfft, config.WelchBand)
	if !ok {
		return math.NaN()
	}
	return spectral.ToDB(psd[idx])
}
