package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn outcomes.
const (
	OutcomeExact    = "exact"
	OutcomeCategory = "category"
	OutcomeFallback = "fallback"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AssistantTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turns_total",
			Help: "Chat turns answered, by resolved category and how it was resolved",
		},
		[]string{"category", "outcome"},
	)

	AssistantSuggestionsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_suggestions_served_total",
			Help: "Question suggestions returned to users",
		},
	)

	AssistantEmotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_emotion_total",
			Help: "Detected user emotion per turn",
		},
		[]string{"emotion"},
	)

	BookingCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_cache_lookups_total",
			Help: "Booking cache lookups by result",
		},
		[]string{"result"},
	)
)

// TurnOutcome labels how a turn was resolved.
func TurnOutcome(exact, fallback bool) string {
	switch {
	case fallback:
		return OutcomeFallback
	case exact:
		return OutcomeExact
	}
	return OutcomeCategory
}
