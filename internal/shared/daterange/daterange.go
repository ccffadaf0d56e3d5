// Package daterange computes the calendar window used for market-data lookups.
package daterange

import (
	"fmt"
	"time"
)

// Layout is the YYYY-MM-DD form used by the market-data API.
const Layout = "2006-01-02"

const (
	// DefaultStartDaysAgo is how far back the window starts.
	DefaultStartDaysAgo = 3
	// DefaultEndDaysAgo keeps the window ending at yesterday's close.
	DefaultEndDaysAgo = 1
)

// DateRange is an immutable [Start, End] pair of calendar dates, Start strictly before End.
type DateRange struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// FormatDate formats t as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// DaysAgo returns the calendar date n days before now.
func DaysAgo(now time.Time, n int) string {
	return FormatDate(now.AddDate(0, 0, -n))
}

// New builds the window [now-startDaysAgo, now-endDaysAgo].
// startDaysAgo must be greater than endDaysAgo and endDaysAgo must not be negative.
func New(now time.Time, startDaysAgo, endDaysAgo int) (DateRange, error) {
	if endDaysAgo < 0 {
		return DateRange{}, fmt.Errorf("end offset must not be negative, got %d", endDaysAgo)
	}
	if startDaysAgo <= endDaysAgo {
		return DateRange{}, fmt.Errorf("start offset %d must be greater than end offset %d", startDaysAgo, endDaysAgo)
	}
	return DateRange{
		Start: DaysAgo(now, startDaysAgo),
		End:   DaysAgo(now, endDaysAgo),
	}, nil
}

// Default returns the 3-days-ago to 1-day-ago window.
func Default(now time.Time) DateRange {
	r, _ := New(now, DefaultStartDaysAgo, DefaultEndDaysAgo)
	return r
}

// IsZero reports whether the range was never computed.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}
