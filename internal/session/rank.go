package session

import (
	"sort"
	"time"
)

// Rank orders one day's classified sessions so that actionable ones surface
// first: ongoing, then upcoming, then completed, then everything else. Within
// a bucket sessions sort by start time ascending; residual ties keep their
// input order. The input slice is never mutated - the day feed may back more
// than one view.
func Rank(items []Classified) []Classified {
	out := make([]Classified, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := rankBucket(out[i]), rankBucket(out[j])
		if bi != bj {
			return bi < bj
		}
		return startMinutes(out[i]) < startMinutes(out[j])
	})
	return out
}

// ClassifyAndRank classifies each session against now and returns the ranked
// day feed.
func (c Classifier) ClassifyAndRank(sessions []Session, now time.Time) []Classified {
	items := make([]Classified, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, c.Classify(s, now))
	}
	return Rank(items)
}

func rankBucket(c Classified) int {
	switch {
	case c.Status == StatusOngoing && !c.Completed:
		return 1
	case c.Status == StatusUpcoming && !c.Completed:
		return 2
	case c.Completed:
		return 3
	default:
		return 4
	}
}

// startMinutes sorts malformed start times to the end of their bucket.
func startMinutes(c Classified) int {
	clock, err := ParseClock(c.StartTime)
	if err != nil {
		return 24 * 60
	}
	return clock.Minutes()
}
