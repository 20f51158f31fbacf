package testutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Column positions of the headband export.
const (
	HeadbandColumns = 40
	colTimestamp    = 0
	colLeft         = 22
	colRight        = 23
	colValid        = 37
)

// Headband describes a synthetic headband recording.
type Headband struct {
	Times []float64 // seconds
	Left  []float64
	Right []float64

	// Valid overrides the headband-on flag per row; nil means all "1".
	Valid []bool

	// DateTime writes timestamps as local "2006-01-02 15:04:05.000"
	// strings starting at Start.
	DateTime bool
	Start    time.Time
}

// SineHeadband builds a recording of duration seconds at fs with a leftHz
// sine plus seeded noise on the left channel and a rightHz one on the right.
func SineHeadband(fs, duration, leftHz, rightHz, noise float64) Headband {
	n := int(fs * duration)
	return Headband{
		Times: Times(0, 1/fs, n),
		Left:  Add(DeterministicSine(leftHz, fs, 100, n), DeterministicNoise(1, noise, n)),
		Right: Add(DeterministicSine(rightHz, fs, 100, n), DeterministicNoise(2, noise, n)),
	}
}

// Header returns the header row.
func (h Headband) Header() []string {
	row := make([]string, HeadbandColumns)
	for i := range row {
		row[i] = "col" + strconv.Itoa(i)
	}
	row[colTimestamp] = "TimeStamp"
	row[colLeft] = "RAW_TP9"
	row[colRight] = "RAW_TP10"
	row[colValid] = "HeadBandOn"
	return row
}

// Rows returns the header followed by one row per sample.
func (h Headband) Rows() [][]string {
	rows := make([][]string, 0, len(h.Times)+1)
	rows = append(rows, h.Header())

	for i, t := range h.Times {
		row := make([]string, HeadbandColumns)
		row[colTimestamp] = h.stamp(t)
		row[colLeft] = strconv.FormatFloat(h.Left[i], 'f', -1, 64)
		row[colRight] = strconv.FormatFloat(h.Right[i], 'f', -1, 64)
		row[colValid] = "1"
		if h.Valid != nil && !h.Valid[i] {
			row[colValid] = "0"
		}
		rows = append(rows, row)
	}
	return rows
}

// CSV renders Rows as comma-separated text.
func (h Headband) CSV() string {
	var b strings.Builder
	for _, row := range h.Rows() {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func (h Headband) stamp(t float64) string {
	switch {
	case h.DateTime:
		ms := time.Duration(math.Round(t*1000)) * time.Millisecond
		return h.Start.Add(ms).In(time.Local).Format("2006-01-02 15:04:05.000")
	default:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
}
