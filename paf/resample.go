package paf

import "github.com/RyanBlaney/sonido-paf/algorithms/common"

// Resample removes duplicate timestamps from each channel of seg (first
// occurrence wins), sorts by time and evaluates a natural cubic spline at the
// surviving timestamps. The duration is the span of the left channel's
// unique timestamps.
func Resample(seg Recording) (left, right TimeSeries, duration float64, err error) {
	left, err = resampleChannel(seg.Times, seg.Left, "left")
	if err != nil {
		return TimeSeries{}, TimeSeries{}, 0, err
	}
	right, err = resampleChannel(seg.Times, seg.Right, "right")
	if err != nil {
		return TimeSeries{}, TimeSeries{}, 0, err
	}

	duration = left.Times[len(left.Times)-1] - left.Times[0]
	return left, right, duration, nil
}

func resampleChannel(times, values []float64, name string) (TimeSeries, error) {
	points, err := common.Zip(times, values)
	if err != nil {
		return TimeSeries{}, formatErrorf(err, "%s channel", name)
	}

	unique := common.DedupeSorted(points)
	if len(unique) < 2 {
		return TimeSeries{}, formatErrorf(nil, "not enough unique segment timestamps for %s channel: %d", name, len(unique))
	}

	xs, ys := common.Split(unique)
	resampled, err := common.SplineResample(xs, ys, xs)
	if err != nil {
		return TimeSeries{}, formatErrorf(err, "%s channel spline", name)
	}

	return TimeSeries{Times: xs, Values: resampled}, nil
}
