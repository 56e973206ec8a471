package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Saves by kind (explicit/auto) and result (success/failure)
	saves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_saves_total",
			Help: "Total number of resume saves",
		},
		[]string{"kind", "result"},
	)

	exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_exports_total",
			Help: "Total number of PDF exports",
		},
		[]string{"result"},
	)

	staleResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_stale_responses_total",
			Help: "Async responses dropped because a newer request superseded them",
		},
		[]string{"kind"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_editor_sessions_current",
			Help: "Current number of open editing sessions",
		},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_http_request_duration_seconds",
			Help:    "Time spent handling HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// SessionObserver records editing session outcomes.
type SessionObserver struct{}

func (SessionObserver) SaveFinished(kind string, err error) {
	saves.WithLabelValues(kind, result(err)).Inc()
}

func (SessionObserver) ExportFinished(err error) {
	exports.WithLabelValues(result(err)).Inc()
}

func (SessionObserver) ResponseDiscarded(kind string) {
	staleResponses.WithLabelValues(kind).Inc()
}
