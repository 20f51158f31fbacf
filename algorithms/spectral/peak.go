package spectral

import "math"

// Band is a closed frequency interval [Low, High] in Hz.
type Band struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Contains reports whether f lies inside the band, endpoints included.
func (b Band) Contains(f float64) bool {
	return f >= b.Low && f <= b.High
}

// BandPeak scans values[i] for the bins whose frequency i*fs/n falls inside
// band and returns the index of the first maximum. ok is false when no bin
// lies in the band.
func BandPeak(values []float64, fs float64, n int, band Band) (idx int, ok bool) {
	idx = -1
	for i, v := range values {
		if !band.Contains(BinFrequency(i, fs, n)) {
			continue
		}
		if idx < 0 || v > values[idx] {
			idx = i
		}
	}
	return idx, idx >= 0
}

// ToDB converts a power value to decibels.
func ToDB(power float64) float64 {
	return 10 * math.Log10(power)
}
