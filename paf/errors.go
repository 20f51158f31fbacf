package paf

import "fmt"

// CSVFormatError reports input that cannot produce an estimate: too few
// rows, unparsable or degenerate timestamps, or a segment that vanishes
// after trimming. It is returned unchanged by every pipeline stage.
type CSVFormatError struct {
	Reason string
	Err    error
}

func (e *CSVFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("csv format: %s: %v", e.Reason, e.Err)
	}
	return "csv format: " + e.Reason
}

func (e *CSVFormatError) Unwrap() error {
	return e.Err
}

func formatError(reason string) error {
	return &CSVFormatError{Reason: reason}
}

func formatErrorf(err error, format string, args ...any) error {
	return &CSVFormatError{Reason: fmt.Sprintf(format, args...), Err: err}
}
