package model

import "time"

// Stats holds the running totals for a user.
type Stats struct {
	Total              int   `json:"total"`
	Streak             int   `json:"streak"`
	LastClassification int64 `json:"lastClassification"` // epoch milliseconds, 0 = never
}

// HasClassified reports whether at least one classification was recorded.
func (s Stats) HasClassified() bool {
	return s.LastClassification > 0
}

// LastClassifiedAt returns the time of the most recent classification in loc.
// The zero time is returned when nothing was classified yet.
func (s Stats) LastClassifiedAt(loc *time.Location) time.Time {
	if !s.HasClassified() {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(s.LastClassification).In(loc)
}
