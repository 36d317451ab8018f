// Package roster models the per-student present/absent marks for one class
// session's attendance-taking workflow. Every operation returns a new Roster
// value; nothing here retains state between calls, so the enclosing workflow
// can discard an in-progress roster to cancel.
package roster

import "strings"

// Status marks a single student present or absent.
type Status string

const (
	Present Status = "present"
	Absent  Status = "absent"
)

// Invert returns the opposite mark.
func (s Status) Invert() Status {
	if s == Present {
		return Absent
	}
	return Present
}

// SelectAllState labels the bulk present/absent button. A mixed roster pins
// to AllPresent so the button label stays meaningful; that pin is a UX rule,
// not something derivable from the entries.
type SelectAllState string

const (
	AllPresent SelectAllState = "allPresent"
	AllAbsent  SelectAllState = "allAbsent"
)

// Entry is one student's mark, keyed by roll number.
type Entry struct {
	StudentNumber int    `json:"student_number"`
	StudentName   string `json:"student_name,omitempty"`
	Status        Status `json:"status"`
}

// Student seeds a roster entry from the class list.
type Student struct {
	RollNumber int
	Name       string
}

// Summary aggregates a roster's marks.
type Summary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
}

// Roster is the ordered set of marks for one session.
type Roster struct {
	Entries   []Entry        `json:"entries"`
	SelectAll SelectAllState `json:"select_all_state"`
}

// New builds a roster of size entries with roll numbers 1..size, all present.
// Fallback path for when the class list itself is unavailable and only a
// head count is known.
func New(size int) Roster {
	if size < 0 {
		size = 0
	}
	entries := make([]Entry, size)
	for i := range entries {
		entries[i] = Entry{StudentNumber: i + 1, Status: Present}
	}
	return Roster{Entries: entries, SelectAll: AllPresent}
}

// FromStudents builds a roster from the class list, preserving its order.
// Every entry starts present.
func FromStudents(students []Student) Roster {
	entries := make([]Entry, len(students))
	for i, st := range students {
		entries[i] = Entry{StudentNumber: st.RollNumber, StudentName: st.Name, Status: Present}
	}
	return Roster{Entries: entries, SelectAll: AllPresent}
}

// Hydrate reconstructs a roster from a previously submitted record. Statuses
// are kept verbatim; only the bulk indicator is recomputed. Hydrating the same
// input twice yields identical rosters.
func Hydrate(existing []Entry) Roster {
	entries := make([]Entry, len(existing))
	copy(entries, existing)
	return Roster{Entries: entries, SelectAll: selectAllOf(entries)}
}

// Toggle flips the entry at index i and recomputes the bulk indicator.
// Out-of-range indexes, including any index on an empty roster, are no-ops.
func (r Roster) Toggle(i int) Roster {
	if i < 0 || i >= len(r.Entries) {
		return r
	}
	entries := make([]Entry, len(r.Entries))
	copy(entries, r.Entries)
	entries[i].Status = entries[i].Status.Invert()
	return Roster{Entries: entries, SelectAll: selectAllOf(entries)}
}

// InvertAll sets every entry to the opposite of the current bulk indicator:
// allPresent marks everyone absent, allAbsent marks everyone present. This is
// a uniform set, not a per-entry flip. Empty rosters are no-ops.
func (r Roster) InvertAll() Roster {
	if len(r.Entries) == 0 {
		return r
	}
	next := Absent
	flipped := AllAbsent
	if r.SelectAll == AllAbsent {
		next = Present
		flipped = AllPresent
	}
	entries := make([]Entry, len(r.Entries))
	for i, e := range r.Entries {
		e.Status = next
		entries[i] = e
	}
	return Roster{Entries: entries, SelectAll: flipped}
}

// Summarize counts present and absent marks.
func (r Roster) Summarize() Summary {
	var s Summary
	for _, e := range r.Entries {
		if e.Status == Present {
			s.Present++
		} else {
			s.Absent++
		}
	}
	s.Total = len(r.Entries)
	return s
}

// CanSubmit reports whether the workflow may build a submission payload: the
// roster must be non-empty and a topic must be present. Returns a
// *ValidationError describing the first failing check.
func (r Roster) CanSubmit(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return &ValidationError{Field: "topic", Reason: "topic is required"}
	}
	if len(r.Entries) == 0 {
		return &ValidationError{Field: "roster", Reason: "no attendance data to submit"}
	}
	return nil
}

// selectAllOf derives the bulk indicator: all present, all absent, or the
// AllPresent pin for mixed rosters.
func selectAllOf(entries []Entry) SelectAllState {
	if len(entries) == 0 {
		return AllPresent
	}
	allPresent, allAbsent := true, true
	for _, e := range entries {
		if e.Status == Present {
			allAbsent = false
		} else {
			allPresent = false
		}
	}
	switch {
	case allPresent:
		return AllPresent
	case allAbsent:
		return AllAbsent
	default:
		return AllPresent
	}
}
