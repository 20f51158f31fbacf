package spectral

import (
	"github.com/RyanBlaney/sonido-paf/algorithms/common"
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides the forward transform used by every estimator in this package.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the forward FFT of x using mjibson/go-dsp.
// The result has len(x) bins.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// ComputePadded zero-pads x to the next power of two and transforms it.
// It returns the spectrum and the transform size.
func (f *FFT) ComputePadded(x []float64) ([]complex128, int) {
	n := common.NextPow2(len(x))
	if n == len(x) {
		return f.Compute(x), n
	}

	padded := make([]float64, n)
	copy(padded, x)
	return f.Compute(padded), n
}

// BinFrequency returns the centre frequency of bin i for an n-point
// transform at sample rate fs.
func BinFrequency(i int, fs float64, n int) float64 {
	return float64(i) * fs / float64(n)
}
