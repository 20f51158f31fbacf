package windowing

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Hamming is a symmetric Hamming window,
// w[i] = 0.54 - 0.46*cos(2*pi*i/(n-1)).
type Hamming struct {
	size         int
	coefficients []float64
	power        float64
}

// NewHamming creates a new symmetric Hamming window of the given size.
// A size-1 window is the single coefficient 1.
func NewHamming(size int) (*Hamming, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive: %d", size)
	}

	h := &Hamming{size: size}
	h.generate()
	return h, nil
}

func (h *Hamming) generate() {
	h.coefficients = make([]float64, h.size)

	if h.size == 1 {
		h.coefficients[0] = 1
	} else {
		denominator := float64(h.size - 1)
		for i := range h.size {
			h.coefficients[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/denominator)
		}
	}

	h.power = floats.Dot(h.coefficients, h.coefficients)
}

// Apply writes signal*window into dst. Both must match the window size.
func (h *Hamming) Apply(dst, signal []float64) error {
	if len(signal) != h.size || len(dst) != h.size {
		return fmt.Errorf("signal length (%d) or destination length (%d) doesn't match window size (%d)",
			len(signal), len(dst), h.size)
	}

	vecmath.MulBlock(dst, signal, h.coefficients)
	return nil
}

// Power returns the sum of squared coefficients, used to normalize PSD estimates.
func (h *Hamming) Power() float64 {
	return h.power
}

// Coefficients returns a copy of the window coefficients
func (h *Hamming) Coefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}

// Size returns the window size
func (h *Hamming) Size() int {
	return h.size
}
