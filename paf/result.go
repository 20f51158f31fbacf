package paf

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-paf/algorithms/common"
)

// median2 is the "median" of the left/right pair. With two values it is
// the mean; the name is kept so the summary keeps both figures.
func median2(a, b float64) float64 {
	return common.PairMean(a, b)
}

// Aggregate combines both channels' estimates into a Result.
func Aggregate(fs, duration float64, left, right ChannelEstimate) *Result {
	return &Result{
		FS:       fs,
		Duration: duration,
		FFT: Estimate{
			Left:   left.FFTPeak,
			Right:  right.FFTPeak,
			Mean:   common.PairMean(left.FFTPeak, right.FFTPeak),
			Median: median2(left.FFTPeak, right.FFTPeak),
		},
		TimeLeft:  left.FFTTime,
		TimeRight: right.FFTTime,
		Welch: Estimate{
			Left:   left.WelchPeak,
			Right:  right.WelchPeak,
			Mean:   common.PairMean(left.WelchPeak, right.WelchPeak),
			Median: median2(left.WelchPeak, right.WelchPeak),
		},
		RawLeft:  left.Samples,
		RawRight: right.Samples,
	}
}

// Format renders the three-line summary shown to users.
func (r *Result) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fs=%.1f Hz, dur=%.1fs\n", r.FS, r.Duration)
	fmt.Fprintf(&b, "Welch PAF: L=%.1f R=%.1f mean=%.1f\n", r.Welch.Left, r.Welch.Right, r.Welch.Mean)
	fmt.Fprintf(&b, "FFT PAF:   L=%.1f R=%.1f mean=%.1f", r.FFT.Left, r.FFT.Right, r.FFT.Mean)
	return b.String()
}

// Notes renders each strategy's peak frequencies next to the time of the
// strongest point of the matching series, followed by the parameters.
func (r *Report) Notes() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Welch PAF: L=%.1f Hz @ %.2f s, R=%.1f Hz @ %.2f s.\n",
		r.Result.Welch.Left, r.WelchTimeLeft, r.Result.Welch.Right, r.WelchTimeRight)
	fmt.Fprintf(&b, "FFT PAF:   L=%.1f Hz @ %.2f s, R=%.1f Hz @ %.2f s.\n",
		r.Result.FFT.Left, r.FFTTimeLeft, r.Result.FFT.Right, r.FFTTimeRight)
	b.WriteString(r.Params.Describe())
	return b.String()
}
