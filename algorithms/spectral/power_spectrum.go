package spectral

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-paf/algorithms/common"
	"github.com/RyanBlaney/sonido-paf/algorithms/windowing"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// SegmentLength converts a duration in seconds to a sample count at fs,
// truncating toward zero, never less than one.
func SegmentLength(fs, seconds float64) int {
	n := int(fs * seconds)
	return max(n, 1)
}

// Step returns the hop between consecutive segments of length n for the
// given fractional overlap, never less than one.
func Step(n int, overlap float64) int {
	s := int(float64(n) * (1 - overlap))
	return max(s, 1)
}

// PowerAccumulator sums Hamming-windowed, zero-padded periodograms of
// equal-length segments. Each segment contributes
// (Re^2+Im^2)/(fs*windowPower) over the first nfft/2 bins.
type PowerAccumulator struct {
	fs     float64
	segLen int
	nfft   int
	window *windowing.Hamming
	fft    *FFT

	sum   []float64
	count int

	padded []float64
	re     []float64
	im     []float64
	power  []float64
}

// NewPowerAccumulator creates an accumulator for segments of segLen samples.
func NewPowerAccumulator(segLen int, fs float64) (*PowerAccumulator, error) {
	if fs <= 0 || math.IsNaN(fs) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("sample rate must be positive and finite: %v", fs)
	}

	window, err := windowing.NewHamming(segLen)
	if err != nil {
		return nil, err
	}

	nfft := common.NextPow2(segLen)
	half := nfft / 2

	return &PowerAccumulator{
		fs:     fs,
		segLen: segLen,
		nfft:   nfft,
		window: window,
		fft:    NewFFT(),
		sum:    make([]float64, half),
		padded: make([]float64, nfft),
		re:     make([]float64, half),
		im:     make([]float64, half),
		power:  make([]float64, half),
	}, nil
}

// Add windows segment, transforms it and adds its PSD to the running sum.
func (pa *PowerAccumulator) Add(segment []float64) error {
	if len(segment) != pa.segLen {
		return fmt.Errorf("segment length (%d) doesn't match accumulator length (%d)", len(segment), pa.segLen)
	}

	clear(pa.padded)
	if err := pa.window.Apply(pa.padded[:pa.segLen], segment); err != nil {
		return err
	}

	spectrum := pa.fft.Compute(pa.padded)
	for i := range pa.re {
		pa.re[i] = real(spectrum[i])
		pa.im[i] = imag(spectrum[i])
	}

	vecmath.Power(pa.power, pa.re, pa.im)
	floats.AddScaled(pa.sum, 1/(pa.fs*pa.window.Power()), pa.power)
	pa.count++
	return nil
}

// Count returns how many segments have been added.
func (pa *PowerAccumulator) Count() int {
	return pa.count
}

// NFFT returns the transform size.
func (pa *PowerAccumulator) NFFT() int {
	return pa.nfft
}

// Mean returns the averaged PSD, or nil when nothing was added.
func (pa *PowerAccumulator) Mean() []float64 {
	if pa.count == 0 {
		return nil
	}
	mean := make([]float64, len(pa.sum))
	floats.ScaleTo(mean, 1/float64(pa.count), pa.sum)
	return mean
}

// Reset clears the running sum so the accumulator can be reused.
func (pa *PowerAccumulator) Reset() {
	clear(pa.sum)
	pa.count = 0
}

// Welch averages the periodograms of every segment of segLen samples that
// fits in data, advancing by step. It returns the mean PSD (nil when no
// segment fits) and the transform size.
func Welch(data []float64, fs float64, segLen, step int) ([]float64, int, error) {
	if step < 1 {
		return nil, 0, fmt.Errorf("step must be positive: %d", step)
	}

	acc, err := NewPowerAccumulator(segLen, fs)
	if err != nil {
		return nil, 0, err
	}

	for off := 0; off+segLen <= len(data); off += step {
		if err := acc.Add(data[off : off+segLen]); err != nil {
			return nil, 0, err
		}
	}

	return acc.Mean(), acc.NFFT(), nil
}
