package attendance

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"classtrack/internal/metrics"
	"classtrack/internal/queue"
	"classtrack/internal/roster"
	"classtrack/internal/schedule"
	"classtrack/internal/session"
)

// Submission is the payload the client hands over when attendance is saved.
type Submission struct {
	SessionID     string         `json:"schedule_id" binding:"required"`
	FacultyID     string         `json:"faculty_id"`
	Topic         string         `json:"topic" binding:"required"`
	Date          string         `json:"attendance_date"`
	Students      []roster.Entry `json:"students" binding:"required"`
	MarkCompleted bool           `json:"mark_class_completed"`
}

// BuildSubmission assembles a payload from a workflow's roster, enforcing the
// submit preconditions first.
func BuildSubmission(sessionID, facultyID, topic string, date time.Time, r roster.Roster) (Submission, error) {
	if err := r.CanSubmit(topic); err != nil {
		return Submission{}, err
	}
	return Submission{
		SessionID:     sessionID,
		FacultyID:     facultyID,
		Topic:         strings.TrimSpace(topic),
		Date:          date.Format("2006-01-02"),
		Students:      r.Entries,
		MarkCompleted: true,
	}, nil
}

// Seed is what a marking workflow starts from: hydrated entries when a
// submission already exists, the class list otherwise, or a bare head count
// as a last resort.
type Seed struct {
	Roster   roster.Roster `json:"roster"`
	Topic    string        `json:"topic,omitempty"`
	Existing bool          `json:"existing"`
}

// SubmissionStore persists rosters; *Repository satisfies it.
type SubmissionStore interface {
	SaveSubmission(ctx context.Context, sessionID, facultyID, topic string, entries []roster.Entry) error
	GetRoster(ctx context.Context, sessionID string) ([]roster.Entry, string, error)
}

// SessionDirectory resolves sessions and class lists; *schedule.Repository
// satisfies it.
type SessionDirectory interface {
	Get(ctx context.Context, id string) (session.Session, error)
	ListStudents(ctx context.Context, year, department, section string) ([]schedule.Student, error)
}

// FeedInvalidator drops a faculty member's cached day feed after a write;
// *schedule.Service satisfies it.
type FeedInvalidator interface {
	InvalidateFeed(ctx context.Context, facultyID string, day time.Time)
}

// Service validates and records attendance submissions.
type Service struct {
	repo       SubmissionStore
	sched      SessionDirectory
	classifier session.Classifier
	q          queue.Queue
	feeds      FeedInvalidator
	fallback   int
}

// NewService creates a service. feeds may be nil when no feed cache is in
// play; fallback is the roster size used when the class directory is empty.
func NewService(repo SubmissionStore, sched SessionDirectory, classifier session.Classifier, q queue.Queue, feeds FeedInvalidator, fallback int) *Service {
	if fallback <= 0 {
		fallback = 71
	}
	return &Service{repo: repo, sched: sched, classifier: classifier, q: q, feeds: feeds, fallback: fallback}
}

// SeedRoster builds the starting roster for a session's marking workflow.
func (s *Service) SeedRoster(ctx context.Context, sessionID string) (Seed, error) {
	existing, topic, err := s.repo.GetRoster(ctx, sessionID)
	if err != nil {
		return Seed{}, err
	}
	if len(existing) > 0 {
		return Seed{Roster: roster.Hydrate(existing), Topic: topic, Existing: true}, nil
	}

	sess, err := s.sched.Get(ctx, sessionID)
	if err != nil {
		return Seed{}, err
	}
	students, err := s.sched.ListStudents(ctx, sess.Year, sess.Department, sess.Section)
	if err != nil {
		return Seed{}, err
	}
	if len(students) == 0 {
		return Seed{Roster: roster.New(s.fallback)}, nil
	}

	seed := make([]roster.Student, len(students))
	for i, st := range students {
		seed[i] = roster.Student{RollNumber: st.RollNumber, Name: st.Name}
	}
	return Seed{Roster: roster.FromStudents(seed)}, nil
}

// Submit validates and durably records a submission, then invalidates the
// faculty member's cached day feed and notifies the tally worker. Validation
// failures come back as *roster.ValidationError. now is the classification
// reference time, supplied by the caller.
func (s *Service) Submit(ctx context.Context, sub Submission, now time.Time) error {
	r := roster.Hydrate(sub.Students)
	if err := r.CanSubmit(sub.Topic); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	sess, err := s.sched.Get(ctx, sub.SessionID)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	if sess.FacultyID != sub.FacultyID {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return &roster.ValidationError{Field: "faculty_id", Reason: "session belongs to another faculty"}
	}
	if c := s.classifier.Classify(sess, now); !c.CanMarkAttendance {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return &roster.ValidationError{
			Field:  "schedule_id",
			Reason: fmt.Sprintf("attendance cannot be marked for a %s session", c.Status),
		}
	}

	if err := s.repo.SaveSubmission(ctx, sub.SessionID, sub.FacultyID, strings.TrimSpace(sub.Topic), sub.Students); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()

	// The cached feed still carries completed=false until the TTL runs
	// out; drop it so the next read reflects the completion immediately.
	if s.feeds != nil {
		s.feeds.InvalidateFeed(ctx, sub.FacultyID, sess.Date)
	}

	if err := s.q.Publish(ctx, queue.Message{Type: queue.TypeSubmission, Body: []byte(sub.SessionID)}); err != nil {
		log.Printf("queue publish failed for %s: %v", sub.SessionID, err)
	}
	return nil
}
