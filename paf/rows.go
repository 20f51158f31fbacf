package paf

import (
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-paf/paf/config"
)

// FilterRows drops the header row and keeps the rows recorded with the
// headband on (field 37 equal to "1").
func FilterRows(all []RawRow) ([]RawRow, error) {
	if len(all) <= 1 {
		return nil, formatError("empty dataset: no data rows after the header")
	}

	valid := make([]RawRow, 0, len(all)-1)
	for _, row := range all[1:] {
		if len(row) > config.ColumnValid && row[config.ColumnValid] == config.ValidFlag {
			valid = append(valid, row)
		}
	}

	if len(valid) < 2 {
		return nil, formatErrorf(nil, "no valid segment: %d rows with headband on, need at least 2", len(valid))
	}
	return valid, nil
}

// extractColumns returns the raw timestamp strings and both channels of
// rows. Rows with a blank timestamp are skipped entirely so the columns stay
// aligned.
func extractColumns(rows []RawRow) (stamps []string, left, right []float64, err error) {
	stamps = make([]string, 0, len(rows))
	left = make([]float64, 0, len(rows))
	right = make([]float64, 0, len(rows))

	for i, row := range rows {
		ts := strings.TrimSpace(row[config.ColumnTimestamp])
		if ts == "" {
			continue
		}

		l, err := parseChannel(row, config.ColumnLeft)
		if err != nil {
			return nil, nil, nil, formatErrorf(err, "row %d: left channel", i+1)
		}
		r, err := parseChannel(row, config.ColumnRight)
		if err != nil {
			return nil, nil, nil, formatErrorf(err, "row %d: right channel", i+1)
		}

		stamps = append(stamps, ts)
		left = append(left, l)
		right = append(right, r)
	}
	return stamps, left, right, nil
}

func parseChannel(row RawRow, col int) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
}
