package attendance

import (
	"errors"
	"testing"
	"time"

	"classtrack/internal/roster"
)

func TestBuildSubmission(t *testing.T) {
	r := roster.New(3).Toggle(1)
	date := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local)

	sub, err := BuildSubmission("sess-1", "fac-1", "  Graph traversal  ", date, r)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sub.SessionID != "sess-1" || sub.FacultyID != "fac-1" {
		t.Fatalf("ids = %s/%s", sub.SessionID, sub.FacultyID)
	}
	if sub.Topic != "Graph traversal" {
		t.Fatalf("topic not trimmed: %q", sub.Topic)
	}
	if sub.Date != "2026-03-10" {
		t.Fatalf("date = %s", sub.Date)
	}
	if !sub.MarkCompleted {
		t.Fatal("submission must mark the session completed")
	}
	if len(sub.Students) != 3 || sub.Students[1].Status != roster.Absent {
		t.Fatalf("students = %+v", sub.Students)
	}
}

func TestBuildSubmissionRejectsBlankTopic(t *testing.T) {
	_, err := BuildSubmission("sess-1", "fac-1", "   ", time.Now(), roster.New(3))
	var verr *roster.ValidationError
	if !errors.As(err, &verr) || verr.Field != "topic" {
		t.Fatalf("want topic ValidationError, got %v", err)
	}
}

func TestBuildSubmissionRejectsEmptyRoster(t *testing.T) {
	_, err := BuildSubmission("sess-1", "fac-1", "Recursion", time.Now(), roster.New(0))
	var verr *roster.ValidationError
	if !errors.As(err, &verr) || verr.Field != "roster" {
		t.Fatalf("want roster ValidationError, got %v", err)
	}
}
