package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classtrack/internal/metrics"
	"classtrack/internal/session"
	"classtrack/internal/store"
)

// ErrSlotTaken is returned when a new session overlaps an existing booking
// for the same class.
var ErrSlotTaken = errors.New("slot already booked for this class")

// ErrCancelForbidden is returned when a session's status no longer allows
// cancellation.
var ErrCancelForbidden = errors.New("session can no longer be cancelled")

// Service serves classified day feeds and manages session bookings.
type Service struct {
	repo       *Repository
	classifier session.Classifier
	cache      *store.Redis
	cacheTTL   time.Duration
}

// NewService creates a service. cache may be nil to disable feed caching.
func NewService(repo *Repository, classifier session.Classifier, cache *store.Redis, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Service{repo: repo, classifier: classifier, cache: cache, cacheTTL: cacheTTL}
}

func feedCacheKey(facultyID string, day time.Time) string {
	return fmt.Sprintf("classtrack:feed:%s:%s", facultyID, day.Format("2006-01-02"))
}

// InvalidateFeed drops the cached day feed after any write that changes a
// session's stored state, the completion flag included.
func (s *Service) InvalidateFeed(ctx context.Context, facultyID string, day time.Time) {
	s.cache.Invalidate(ctx, feedCacheKey(facultyID, day))
}

// DayFeed returns the faculty member's sessions for one calendar day,
// classified against now and ranked so actionable sessions come first. Raw
// sessions are cached briefly; classification always runs fresh so statuses
// track the clock.
func (s *Service) DayFeed(ctx context.Context, facultyID string, day, now time.Time) ([]session.Classified, error) {
	key := feedCacheKey(facultyID, day)

	var raw []session.Session
	if s.cache.GetJSON(ctx, key, &raw) {
		metrics.ScheduleCacheHits.WithLabelValues("hit").Inc()
	} else {
		metrics.ScheduleCacheHits.WithLabelValues("miss").Inc()
		var err error
		raw, err = s.repo.ListByFacultyAndDate(ctx, facultyID, day)
		if err != nil {
			return nil, err
		}
		s.cache.SetJSON(ctx, key, raw, s.cacheTTL)
	}

	feed := s.classifier.ClassifyAndRank(raw, now)
	for _, c := range feed {
		metrics.ClassificationsTotal.WithLabelValues(string(c.Status)).Inc()
	}
	return feed, nil
}

// Create books a new session after validating its time window and checking
// the class's day for overlaps.
func (s *Service) Create(ctx context.Context, ns session.Session) (session.Session, error) {
	start, err := session.ParseClock(ns.StartTime)
	if err != nil {
		return session.Session{}, err
	}
	end, err := session.ParseClock(ns.EndTime)
	if err != nil {
		return session.Session{}, err
	}
	if start.Minutes() >= end.Minutes() {
		return session.Session{}, errors.New("start_time must be before end_time")
	}

	booked, err := s.repo.ListByClassAndDate(ctx, ns.Year, ns.Department, ns.Section, ns.Date)
	if err != nil {
		return session.Session{}, err
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
		if overlapping(start, end, bStart, bEnd) {
			return session.Session{}, ErrSlotTaken
		}
	}

	created, err := s.repo.Insert(ctx, ns)
	if err != nil {
		return session.Session{}, err
	}
	s.InvalidateFeed(ctx, ns.FacultyID, ns.Date)
	return created, nil
}

// Cancel deletes a session if its current status still allows it. Completed
// and expired sessions are refused.
func (s *Service) Cancel(ctx context.Context, id, facultyID string, now time.Time) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if c := s.classifier.Classify(existing, now); !c.CanCancel {
		return ErrCancelForbidden
	}
	if err := s.repo.Delete(ctx, id, facultyID); err != nil {
		return err
	}
	s.InvalidateFeed(ctx, facultyID, existing.Date)
	return nil
}

// Slots returns the free periods for a class on a day.
func (s *Service) Slots(ctx context.Context, year, department, section string, day time.Time) ([]Slot, error) {
	booked, err := s.repo.ListByClassAndDate(ctx, year, department, section, day)
	if err != nil {
		return nil, err
	}
	return FreeSlots(booked), nil
}
