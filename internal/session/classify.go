package session

import "time"

// Status is the point-in-time classification of a session.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOngoing   Status = "ongoing"
	StatusUpcoming  Status = "upcoming"
	StatusExpired   Status = "expired"
	StatusScheduled Status = "scheduled"
)

// DefaultGrace is the post-class window during which attendance can still be
// marked. The 3000-minute value reproduces the behavior faculty have come to
// rely on; a short buffer like 15-30 minutes is the more plausible intent, so
// the constant is a Classifier field rather than baked into the rules.
const DefaultGrace = 3000 * time.Minute

// Classified is a Session plus its derived status and the UI affordances the
// status implies. Status is recomputed on every evaluation, never stored.
type Classified struct {
	Session
	Status            Status `json:"status"`
	CanMarkAttendance bool   `json:"can_mark_attendance"`
	CanCancel         bool   `json:"can_cancel"`
	// Malformed is set when a start or end time failed to parse and the
	// session fell through to the scheduled bucket.
	Malformed bool `json:"malformed,omitempty"`
}

// Classifier derives session statuses against an explicitly supplied clock.
// The zero value uses DefaultGrace.
type Classifier struct {
	Grace time.Duration
}

func (c Classifier) grace() time.Duration {
	if c.Grace <= 0 {
		return DefaultGrace
	}
	return c.Grace
}

// Classify assigns exactly one status. The rules are priority-ordered and the
// first match wins:
//
//  1. completed   - attendance already recorded; terminal.
//  2. ongoing     - now within [start, end+grace] on the session's own day.
//  3. upcoming    - a future day, or today before start.
//  4. expired     - a past day, or today after end+grace.
//  5. scheduled   - fallback; also used when a time string is malformed.
//
// Pure function of its arguments; never reads the wall clock.
func (c Classifier) Classify(s Session, now time.Time) Classified {
	if s.Completed {
		return withCapabilities(s, StatusCompleted)
	}

	startClock, serr := ParseClock(s.StartTime)
	endClock, eerr := ParseClock(s.EndTime)
	if serr != nil || eerr != nil {
		out := withCapabilities(s, StatusScheduled)
		out.Malformed = true
		return out
	}

	// Only the civil fields of Date matter: a date scanned from Postgres
	// carries UTC midnight while now is local, so the window is anchored
	// in now's location to keep the instant comparisons consistent.
	day := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, now.Location())
	start := startClock.At(day)
	endWithGrace := endClock.At(day).Add(c.grace())
	sameDay := SameDay(s.Date, now)

	switch {
	case sameDay && !now.Before(start) && !now.After(endWithGrace):
		return withCapabilities(s, StatusOngoing)
	case compareDay(s.Date, now) > 0 || (sameDay && now.Before(start)):
		return withCapabilities(s, StatusUpcoming)
	case compareDay(s.Date, now) < 0 || (sameDay && now.After(endWithGrace)):
		return withCapabilities(s, StatusExpired)
	default:
		return withCapabilities(s, StatusScheduled)
	}
}

func withCapabilities(s Session, st Status) Classified {
	out := Classified{Session: s, Status: st}
	switch st {
	case StatusOngoing, StatusUpcoming:
		out.CanMarkAttendance = true
		out.CanCancel = true
	case StatusScheduled:
		out.CanCancel = true
	}
	return out
}
