package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Session is one scheduled class meeting for a faculty member.
type Session struct {
	ID          string    `json:"id"`
	FacultyID   string    `json:"faculty_id"`
	Subject     string    `json:"subject_name"`
	SubjectCode string    `json:"subject_code"`
	Year        string    `json:"year"`
	Department  string    `json:"department"`
	Section     string    `json:"section"`
	Venue       string    `json:"venue"`
	Date        time.Time `json:"date"`       // calendar day; time-of-day is ignored
	StartTime   string    `json:"start_time"` // "HH:MM"
	EndTime     string    `json:"end_time"`   // "HH:MM"
	Completed   bool      `json:"completed"`
	Topic       string    `json:"topic,omitempty"`
}

// Clock is a time of day with minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

// At anchors the clock to a calendar day in that day's location.
func (c Clock) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// ParseClock parses a "HH:MM" time-of-day string. Seconds, timezone
// designators, and out-of-range fields are all rejected.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Clock{}, fmt.Errorf("time %q: bad hour: %w", s, err)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Clock{}, fmt.Errorf("time %q: bad minute: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("time %q: out of range", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// compareDay orders two calendar days by their civil fields alone, so a date
// scanned from the database as UTC midnight and a local wall clock compare by
// what the calendar says, not by instant. Returns -1, 0, or 1.
func compareDay(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return sign(ay - by)
	case am != bm:
		return sign(int(am) - int(bm))
	default:
		return sign(ad - bd)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
