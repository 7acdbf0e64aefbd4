package stats

import (
	"fmt"
	"time"
)

// Day is a civil calendar date with no time of day and no zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar date of t as observed in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

// Prev returns the calendar day before d. Month and year boundaries roll over;
// the result never depends on how long the day was.
func (d Day) Prev() Day {
	// Noon UTC keeps the normalization clear of any offset.
	y, m, dd := time.Date(d.Year, d.Month, d.Day-1, 12, 0, 0, 0, time.UTC).Date()
	return Day{Year: y, Month: m, Day: dd}
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayOf(a, loc) == DayOf(b, loc)
}

// IsYesterday reports whether earlier falls on the calendar day immediately
// before now, both observed in loc.
func IsYesterday(earlier, now time.Time, loc *time.Location) bool {
	return DayOf(earlier, loc) == DayOf(now, loc).Prev()
}
