// Package metrics holds the service's prometheus collectors, exposed on
// /metrics by cmd/api and pushed to by the handlers and the tally worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal counts session classifications by resulting status.
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classtrack_classifications_total",
		Help: "Session status classifications served, by status.",
	}, []string{"status"})

	// SubmissionsTotal counts attendance submissions by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classtrack_attendance_submissions_total",
		Help: "Attendance submissions, by outcome (accepted, rejected, failed).",
	}, []string{"outcome"})

	// TalliesProcessedTotal counts worker tally recomputations.
	TalliesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classtrack_tallies_processed_total",
		Help: "Attendance tallies recomputed by the worker.",
	})

	// ScheduleCacheHits counts day-feed cache hits and misses.
	ScheduleCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classtrack_schedule_cache_requests_total",
		Help: "Day feed cache lookups, by result (hit, miss).",
	}, []string{"result"})
)
