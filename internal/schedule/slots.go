package schedule

import "classtrack/internal/session"

// Slot is one bookable period in the college's daily grid.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PeriodGrid is the institution's teaching-hour grid. 13:00-14:00 is the
// lunch break and is never offered.
var PeriodGrid = []Slot{
	{"09:00", "10:00"},
	{"10:00", "11:00"},
	{"11:00", "12:00"},
	{"12:00", "13:00"},
	{"14:00", "15:00"},
	{"15:00", "16:00"},
	{"16:00", "17:00"},
}

// FreeSlots returns the grid periods that do not overlap any booked session.
// Sessions with malformed time strings are skipped rather than blocking the
// whole day.
func FreeSlots(booked []session.Session) []Slot {
	free := make([]Slot, 0, len(PeriodGrid))
	for _, slot := range PeriodGrid {
		if !slotTaken(slot, booked) {
			free = append(free, slot)
		}
	}
	return free
}

func slotTaken(slot Slot, booked []session.Session) bool {
	slotStart, err := session.ParseClock(slot.StartTime)
	if err != nil {
		return true
	}
	slotEnd, err := session.ParseClock(slot.EndTime)
	if err != nil {
		return true
	}
	for _, b := range booked {
		bStart, err := session.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		bEnd, err := session.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		if overlapping(slotStart, slotEnd, bStart, bEnd) {
			return true
		}
	}
	return false
}

// overlapping reports whether two half-open [start, end) windows intersect.
// Back-to-back periods sharing a boundary minute do not overlap.
func overlapping(s1, e1, s2, e2 session.Clock) bool {
	return s1.Minutes() < e2.Minutes() && s2.Minutes() < e1.Minutes()
}
