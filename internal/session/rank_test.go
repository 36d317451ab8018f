package session

import (
	"reflect"
	"testing"
	"time"
)

func classified(id, start string, st Status, completed bool) Classified {
	return Classified{
		Session: Session{ID: id, StartTime: start, EndTime: "23:00", Completed: completed},
		Status:  st,
	}
}

func ids(items []Classified) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.ID
	}
	return out
}

func TestRankBucketOrder(t *testing.T) {
	in := []Classified{
		classified("expired", "08:00", StatusExpired, false),
		classified("done", "09:00", StatusCompleted, true),
		classified("later", "14:00", StatusUpcoming, false),
		classified("now", "11:00", StatusOngoing, false),
		classified("soon", "12:00", StatusUpcoming, false),
	}

	got := ids(Rank(in))
	want := []string{"now", "soon", "later", "done", "expired"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rank order = %v, want %v", got, want)
	}
}

func TestRankStartTimeWithinBucket(t *testing.T) {
	in := []Classified{
		classified("c", "15:30", StatusUpcoming, false),
		classified("a", "08:05", StatusUpcoming, false),
		classified("b", "08:45", StatusUpcoming, false),
	}
	got := ids(Rank(in))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rank order = %v, want %v", got, want)
	}
}

func TestRankStableOnTies(t *testing.T) {
	in := []Classified{
		classified("first", "10:00", StatusUpcoming, false),
		classified("second", "10:00", StatusUpcoming, false),
		classified("third", "10:00", StatusUpcoming, false),
	}
	got := ids(Rank(in))
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tied sessions reordered: %v", got)
	}
}

func TestRankIdempotent(t *testing.T) {
	in := []Classified{
		classified("done", "09:00", StatusCompleted, true),
		classified("now", "11:00", StatusOngoing, false),
		classified("expired", "08:00", StatusExpired, false),
		classified("soon", "12:00", StatusUpcoming, false),
	}
	once := Rank(in)
	twice := Rank(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("rank not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := []Classified{
		classified("b", "12:00", StatusUpcoming, false),
		classified("a", "08:00", StatusUpcoming, false),
	}
	snapshot := make([]Classified, len(in))
	copy(snapshot, in)
	Rank(in)
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatal("input slice was mutated")
	}
}

func TestRankExpiredNeverBeforeActionable(t *testing.T) {
	in := []Classified{
		classified("e1", "07:00", StatusExpired, false),
		classified("u1", "18:00", StatusUpcoming, false),
		classified("e2", "07:30", StatusExpired, false),
		classified("o1", "17:00", StatusOngoing, false),
	}
	got := Rank(in)
	seenExpired := false
	for _, c := range got {
		if c.Status == StatusExpired {
			seenExpired = true
		}
		if seenExpired && (c.Status == StatusOngoing || c.Status == StatusUpcoming) {
			t.Fatalf("expired sorted before actionable: %v", ids(got))
		}
	}
}

func TestClassifyAndRank(t *testing.T) {
	today := day(2026, time.March, 10)
	now := at(2026, time.March, 10, 9, 30)
	sessions := []Session{
		{ID: "afternoon", Date: today, StartTime: "14:00", EndTime: "15:00"},
		{ID: "marked", Date: today, StartTime: "08:00", EndTime: "09:00", Completed: true},
		{ID: "current", Date: today, StartTime: "09:00", EndTime: "10:00"},
	}

	got := Classifier{Grace: 20 * time.Minute}.ClassifyAndRank(sessions, now)
	want := []string{"current", "afternoon", "marked"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("feed order = %v, want %v", ids(got), want)
	}
	if got[0].Status != StatusOngoing || !got[0].CanMarkAttendance {
		t.Fatalf("head of feed = %+v, want actionable ongoing", got[0])
	}
}
