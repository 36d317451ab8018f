package roster

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewDefaultsPresent(t *testing.T) {
	r := New(5)
	if len(r.Entries) != 5 {
		t.Fatalf("len = %d, want 5", len(r.Entries))
	}
	for i, e := range r.Entries {
		if e.StudentNumber != i+1 {
			t.Errorf("entry %d roll = %d, want %d", i, e.StudentNumber, i+1)
		}
		if e.Status != Present {
			t.Errorf("entry %d status = %s, want present", i, e.Status)
		}
	}
	if r.SelectAll != AllPresent {
		t.Fatalf("selectAll = %s, want allPresent", r.SelectAll)
	}
}

func TestFromStudentsKeepsOrder(t *testing.T) {
	r := FromStudents([]Student{
		{RollNumber: 12, Name: "Asha"},
		{RollNumber: 3, Name: "Ravi"},
	})
	if r.Entries[0].StudentNumber != 12 || r.Entries[1].StudentNumber != 3 {
		t.Fatalf("order not preserved: %+v", r.Entries)
	}
	if r.Entries[0].StudentName != "Asha" {
		t.Fatalf("name lost: %+v", r.Entries[0])
	}
}

func TestToggle(t *testing.T) {
	r := New(5).Toggle(2)
	if r.Entries[2].Status != Absent {
		t.Fatalf("entry 2 = %s, want absent", r.Entries[2].Status)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if r.Entries[i].Status != Present {
			t.Fatalf("entry %d changed unexpectedly", i)
		}
	}
	// 4/5 present is mixed, indicator stays pinned to allPresent.
	if r.SelectAll != AllPresent {
		t.Fatalf("selectAll = %s, want allPresent pin", r.SelectAll)
	}
}

func TestToggleToUniformAbsent(t *testing.T) {
	r := New(2).Toggle(0).Toggle(1)
	if r.SelectAll != AllAbsent {
		t.Fatalf("selectAll = %s, want allAbsent", r.SelectAll)
	}
}

func TestToggleOutOfRangeNoop(t *testing.T) {
	r := New(3)
	for _, i := range []int{-1, 3, 99} {
		if got := r.Toggle(i); !reflect.DeepEqual(got, r) {
			t.Fatalf("Toggle(%d) changed roster", i)
		}
	}
	empty := New(0)
	if got := empty.Toggle(0); !reflect.DeepEqual(got, empty) {
		t.Fatal("Toggle on empty roster changed it")
	}
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	r := New(3)
	r.Toggle(1)
	if r.Entries[1].Status != Present {
		t.Fatal("receiver mutated by Toggle")
	}
}

func TestInvertAll(t *testing.T) {
	r := New(71).InvertAll()
	for i, e := range r.Entries {
		if e.Status != Absent {
			t.Fatalf("entry %d = %s after invert, want absent", i, e.Status)
		}
	}
	if r.SelectAll != AllAbsent {
		t.Fatalf("selectAll = %s, want allAbsent", r.SelectAll)
	}
}

func TestInvertAllInvolution(t *testing.T) {
	orig := New(7)
	back := orig.InvertAll().InvertAll()
	if !reflect.DeepEqual(orig, back) {
		t.Fatalf("double invert diverged: %+v", back)
	}

	allAbsent := New(4).InvertAll()
	if got := allAbsent.InvertAll().InvertAll(); !reflect.DeepEqual(got, allAbsent) {
		t.Fatalf("double invert from allAbsent diverged: %+v", got)
	}
}

func TestInvertAllUniformSetNotPerEntryFlip(t *testing.T) {
	// Mixed roster pinned to allPresent: invert marks everyone absent,
	// including those already absent.
	r := New(3).Toggle(1).InvertAll()
	for i, e := range r.Entries {
		if e.Status != Absent {
			t.Fatalf("entry %d = %s, want uniform absent", i, e.Status)
		}
	}
}

func TestInvertAllEmptyNoop(t *testing.T) {
	empty := New(0)
	if got := empty.InvertAll(); !reflect.DeepEqual(got, empty) {
		t.Fatal("InvertAll on empty roster changed it")
	}
}

func TestHydrate(t *testing.T) {
	existing := []Entry{
		{StudentNumber: 1, Status: Present},
		{StudentNumber: 2, Status: Absent},
		{StudentNumber: 3, Status: Present},
	}
	r := Hydrate(existing)
	for i, e := range r.Entries {
		if e.Status != existing[i].Status {
			t.Fatalf("entry %d re-defaulted: %s", i, e.Status)
		}
	}
	if r.SelectAll != AllPresent {
		t.Fatalf("mixed hydrate selectAll = %s, want allPresent pin", r.SelectAll)
	}

	again := Hydrate(existing)
	if !reflect.DeepEqual(r, again) {
		t.Fatal("hydrate not idempotent")
	}
}

func TestHydrateAllAbsent(t *testing.T) {
	r := Hydrate([]Entry{
		{StudentNumber: 1, Status: Absent},
		{StudentNumber: 2, Status: Absent},
	})
	if r.SelectAll != AllAbsent {
		t.Fatalf("selectAll = %s, want allAbsent", r.SelectAll)
	}
}

func TestSummarize(t *testing.T) {
	r := New(5).Toggle(0).Toggle(3)
	got := r.Summarize()
	if got.Present != 3 || got.Absent != 2 || got.Total != 5 {
		t.Fatalf("summary = %+v", got)
	}
	if got.Present+got.Absent != got.Total {
		t.Fatalf("counts do not add up: %+v", got)
	}
}

func TestCanSubmit(t *testing.T) {
	r := New(3)
	if err := r.CanSubmit("Sorting algorithms"); err != nil {
		t.Fatalf("valid submit rejected: %v", err)
	}

	var verr *ValidationError
	if err := r.CanSubmit("   "); err == nil {
		t.Fatal("blank topic accepted")
	} else if !errors.As(err, &verr) || verr.Field != "topic" {
		t.Fatalf("want topic ValidationError, got %v", err)
	}

	if err := New(0).CanSubmit("Sorting algorithms"); err == nil {
		t.Fatal("empty roster accepted")
	} else if !errors.As(err, &verr) || verr.Field != "roster" {
		t.Fatalf("want roster ValidationError, got %v", err)
	}
}
