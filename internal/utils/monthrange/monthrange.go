package monthrange

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MonthsBack is how far back the range may reach, regardless of history.
	MonthsBack = 24
	// MonthsAhead is how far past the current month the range extends.
	MonthsAhead = 12
	// DefaultMonthsBack seeds the range when there is no transaction history.
	DefaultMonthsBack = 12
)

// FirstOfMonth truncates t to midnight on the first day of its month, in t's location.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Bounds returns the inclusive window covering the calendar month that contains t.
func Bounds(t time.Time) (start, end time.Time) {
	start = FirstOfMonth(t)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// Generate lists first-of-month dates, ascending and inclusive, from the month of earliest
// through MonthsAhead months after now. A nil earliest starts DefaultMonthsBack months ago.
// The start is never earlier than MonthsBack months ago nor later than the end.
// All values are in now's location.
func Generate(now time.Time, earliest *time.Time) []time.Time {
	current := FirstOfMonth(now)
	end := current.AddDate(0, MonthsAhead, 0)
	floor := current.AddDate(0, -MonthsBack, 0)

	start := current.AddDate(0, -DefaultMonthsBack, 0)
	if earliest != nil {
		start = FirstOfMonth(earliest.In(now.Location()))
	}
	if start.Before(floor) {
		start = floor
	}
	if start.After(end) {
		start = end
	}

	months := make([]time.Time, 0, monthsBetween(start, end)+1)
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// Last returns the n months ending with the month of now, ascending.
func Last(now time.Time, n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	current := FirstOfMonth(now)
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = current.AddDate(0, i-n+1, 0)
	}
	return months
}

// ErrInvalidMonth is returned by Parse for input not shaped like YYYY-MM.
var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM")

// Parse reads a YYYY-MM month in loc. An empty string yields the month of now.
func Parse(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return FirstOfMonth(now.In(loc)), nil
	}
	t, err := time.ParseInLocation("2006-01", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
	}
	return t, nil
}

func monthsBetween(a, b time.Time) int {
	n := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if n < 0 {
		return 0
	}
	return n
}
