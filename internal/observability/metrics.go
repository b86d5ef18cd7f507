// Package observability holds the Prometheus collectors for the tracker.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aceest"

var (
	workoutsAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "workouts_added_total",
		Help:      "Number of workouts successfully added.",
	})
	minutesAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "workout_minutes_added_total",
		Help:      "Sum of durations, in minutes, of workouts added.",
	})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "validation_failures_total",
		Help:      "Rejected add requests by reason.",
	}, []string{"reason"})
	resets = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "resets_total",
		Help:      "Number of times all workouts were reset.",
	})
	workoutCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "workouts",
		Help:      "Number of workouts currently stored.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

func init() {
	prometheus.MustRegister(
		workoutsAdded,
		minutesAdded,
		validationFailures,
		resets,
		workoutCount,
		httpRequests,
		httpDuration,
	)
}

// RecordWorkoutAdded counts a stored workout and updates the stored total.
func RecordWorkoutAdded(minutes, count int) {
	workoutsAdded.Inc()
	minutesAdded.Add(float64(minutes))
	workoutCount.Set(float64(count))
}

// RecordValidationFailure counts a rejected add.
func RecordValidationFailure(reason string) {
	validationFailures.WithLabelValues(reason).Inc()
}

// RecordReset counts a reset and zeroes the stored total.
func RecordReset() {
	resets.Inc()
	workoutCount.Set(0)
}

// SetWorkoutCount sets the stored-workouts gauge, used after loading.
func SetWorkoutCount(count int) {
	workoutCount.Set(float64(count))
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, statusLabel(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
