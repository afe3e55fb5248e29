package types

import "time"

// dateLayout is the canonical calendar-date format used for task dates,
// forecast days, and persistence keys.
const dateLayout = "2006-01-02"

// DateKey is a calendar date in YYYY-MM-DD form. It carries no time zone;
// callers resolve it against a location when a wall-clock instant is needed.
type DateKey string

// NewDateKey truncates t to its calendar date in t's location.
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

// Time resolves the date key to midnight in the given location.
// Returns the zero time for malformed keys.
func (d DateKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// At resolves the date key to the given wall-clock hour and minute in loc.
func (d DateKey) At(hour, minute int, loc *time.Location) time.Time {
	t := d.Time(loc)
	if t.IsZero() {
		return t
	}
	return t.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// AddDays returns the date key n days after d.
func (d DateKey) AddDays(n int) DateKey {
	t := d.Time(time.UTC)
	if t.IsZero() {
		return d
	}
	return NewDateKey(t.AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
// Lexicographic comparison is correct for the YYYY-MM-DD layout.
func (d DateKey) Before(other DateKey) bool { return string(d) < string(other) }

// Valid reports whether the key parses as a calendar date.
func (d DateKey) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// DaysBetween returns the whole number of calendar days from a to b,
// negative when b precedes a. Both dates are resolved in UTC so the result
// is independent of wall-clock offsets.
func DaysBetween(a, b DateKey) int {
	ta, tb := a.Time(time.UTC), b.Time(time.UTC)
	if ta.IsZero() || tb.IsZero() {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}
