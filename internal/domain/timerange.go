package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeRange is returned when a time range does not satisfy
// start strictly before end.
var ErrInvalidTimeRange = errors.New("domain: time range start must precede end")

// TimeRange is a UTC time window. Start is strictly before End.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a TimeRange, normalising both bounds to UTC.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	start = start.UTC()
	end = end.UTC()
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidTimeRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{Start: start, End: end}, nil
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Started reports whether the range has started at the given moment
// (the start instant itself counts as started).
func (r TimeRange) Started(now time.Time) bool {
	return !now.Before(r.Start)
}

// Ended reports whether the range has ended at the given moment
// (the end instant itself counts as ended).
func (r TimeRange) Ended(now time.Time) bool {
	return !now.Before(r.End)
}
