package paf

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/RyanBlaney/sonido-paf/paf/config"
)

// DateTimeLayout is the human-readable timestamp format of the recordings,
// interpreted in the local time zone.
const DateTimeLayout = "2006-01-02 15:04:05.000"

var numericStamp = regexp.MustCompile(`^[-\d.]+$`)

// UnitDetector decides from the first two numeric timestamps whether the
// column is in milliseconds.
type UnitDetector func(first, second float64) bool

// DetectMillis treats the column as milliseconds when the first delta lies
// in (0, 0.01].
func DetectMillis(first, second float64) bool {
	d := second - first
	return d > 0 && d <= 0.01
}

// SecondsUnit never rescales numeric timestamps.
func SecondsUnit(_, _ float64) bool { return false }

// MillisUnit always rescales numeric timestamps from milliseconds.
func MillisUnit(_, _ float64) bool { return true }

// UnitDetectorFor maps a config.TimestampUnit* name to its detector.
func UnitDetectorFor(name string) (UnitDetector, error) {
	switch name {
	case config.TimestampUnitAuto, "":
		return DetectMillis, nil
	case config.TimestampUnitSeconds:
		return SecondsUnit, nil
	case config.TimestampUnitMillis:
		return MillisUnit, nil
	default:
		return nil, fmt.Errorf("unknown timestamp unit %q", name)
	}
}

// NormalizeTimestamps converts raw timestamps to seconds using DetectMillis.
func NormalizeTimestamps(raw []string) ([]float64, error) {
	return NormalizeTimestampsWith(raw, DetectMillis)
}

// NormalizeTimestampsWith converts raw timestamps to seconds, in row order.
// Numeric columns are scaled by 1/1000 when detect reports milliseconds;
// date-time columns become seconds since the first row.
func NormalizeTimestampsWith(raw []string, detect UnitDetector) ([]float64, error) {
	if len(raw) < 2 {
		return nil, formatErrorf(nil, "need at least 2 timestamps, got %d", len(raw))
	}

	if numericStamp.MatchString(raw[0]) {
		return parseNumericStamps(raw, detect)
	}
	return parseDateTimeStamps(raw)
}

func parseNumericStamps(raw []string, detect UnitDetector) ([]float64, error) {
	nums := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, formatErrorf(err, "timestamp %d", i+1)
		}
		nums[i] = v
	}

	if detect(nums[0], nums[1]) {
		for i := range nums {
			nums[i] /= 1000.0
		}
	}
	return nums, nil
}

func parseDateTimeStamps(raw []string) ([]float64, error) {
	millis := make([]int64, len(raw))
	for i, s := range raw {
		t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
		if err != nil {
			return nil, formatErrorf(err, "timestamp %d", i+1)
		}
		millis[i] = t.UnixMilli()
	}

	secs := make([]float64, len(millis))
	for i, ms := range millis {
		secs[i] = float64(ms-millis[0]) / 1000.0
	}
	return secs, nil
}
