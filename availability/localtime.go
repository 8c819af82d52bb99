package availability

import (
	"fmt"
	"time"
)

// Location resolves a business timezone identifier (e.g. "Asia/Jakarta").
func Location(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// BusinessDate converts a stored timestamp to the business-local calendar
// date (midnight in loc). All comparisons between reservation timestamps
// and a caller-selected date must go through here; comparing raw UTC dates
// shifts by a day near midnight.
func BusinessDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// SameDate reports whether two times fall on the same business-local date.
func SameDate(a, b time.Time, loc *time.Location) bool {
	return BusinessDate(a, loc).Equal(BusinessDate(b, loc))
}

// MinuteOfDay returns minutes since local midnight for t.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
