package paf

import "github.com/RyanBlaney/sonido-paf/algorithms/common"

// EstimateSampleRate derives the sample rate from the median of the positive
// deltas between distinct sorted timestamps. It returns fs and the interval.
func EstimateSampleRate(times []float64) (fs, dt float64, err error) {
	unique := common.UniqueSorted(times)
	if len(unique) < 2 {
		return 0, 0, formatErrorf(nil, "not enough unique timestamps: %d", len(unique))
	}

	deltas := common.PositiveDeltas(unique)
	if len(deltas) == 0 {
		return 0, 0, formatError("cannot estimate sampling rate: no positive timestamp deltas")
	}

	dt = common.Median(deltas)
	return 1.0 / dt, dt, nil
}
