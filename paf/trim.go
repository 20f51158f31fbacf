package paf

import "github.com/RyanBlaney/sonido-paf/paf/config"

// TrimSegment drops the first and last config.TrimSeconds of rec. The bounds
// are taken from the first and last timestamps in row order; the result is
// rec[start:end) where start is the first index at least TrimSeconds after
// the first timestamp and end the last index at least TrimSeconds before the
// last one.
func TrimSegment(rec Recording) (Recording, error) {
	n := rec.Len()
	if n == 0 || len(rec.Left) != n || len(rec.Right) != n {
		return Recording{}, formatErrorf(nil, "invalid interval after trimming: %d timestamps, %d/%d samples",
			n, len(rec.Left), len(rec.Right))
	}

	lower := rec.Times[0] + config.TrimSeconds
	upper := rec.Times[n-1] - config.TrimSeconds

	start := -1
	for i, t := range rec.Times {
		if t >= lower {
			start = i
			break
		}
	}

	end := -1
	for i := n - 1; i >= 0; i-- {
		if rec.Times[i] <= upper {
			end = i
			break
		}
	}

	if start < 0 || end <= start {
		return Recording{}, formatErrorf(nil, "invalid interval after trimming: start=%d end=%d", start, end)
	}

	return Recording{
		Times: rec.Times[start:end],
		Left:  rec.Left[start:end],
		Right: rec.Right[start:end],
	}, nil
}
