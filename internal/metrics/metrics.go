// Package metrics provides the centralized Prometheus registry for the
// prediction core's batch jobs and live poller.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesRatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "games_rated_total",
		Help:      "Total number of games rated by the Elo engine",
	}, []string{"sport"})
	GamesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "games_skipped_total",
		Help:      "Total number of already-rated games skipped by sweeps",
	}, []string{"sport"})
	PredictionsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "predictions_generated_total",
		Help:      "Total number of pre-game predictions generated",
	}, []string{"sport"})
	PredictionsGradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "predictions_graded_total",
		Help:      "Total number of predictions graded",
	}, []string{"sport"})
	PropsGradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "props_graded_total",
		Help:      "Total number of player props graded",
	}, []string{"sport"})
	PropsUnmatchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "props_unmatched_total",
		Help:      "Total number of props left ungraded for lack of a name match",
	}, []string{"sport"})
	LiveUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "live_updates_total",
		Help:      "Total number of live overlay updates written",
	}, []string{"sport"})
	BatchFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picksports",
		Name:      "batch_failures_total",
		Help:      "Total number of per-record failures tolerated by batch jobs",
	}, []string{"job"})
)

// Gauge metrics
var (
	LiveGames = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "picksports",
		Name:      "live_games",
		Help:      "Number of games currently in progress",
	}, []string{"sport"})
	PropHitRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "picksports",
		Name:      "prop_hit_rate",
		Help:      "Hit rate of the most recent prop grading batch",
	}, []string{"sport"})
	StreamSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "picksports",
		Name:      "stream_subscribers",
		Help:      "Number of connected overlay stream subscribers",
	})
)

// Histogram metrics
var (
	SweepDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "picksports",
		Name:      "sweep_duration_seconds",
		Help:      "Duration of chronological rating sweeps in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	}, []string{"sport"})
	LivePollDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "picksports",
		Name:      "live_poll_duration_seconds",
		Help:      "Duration of one live polling cycle in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesRatedTotal)
		registry.MustRegister(GamesSkippedTotal)
		registry.MustRegister(PredictionsGeneratedTotal)
		registry.MustRegister(PredictionsGradedTotal)
		registry.MustRegister(PropsGradedTotal)
		registry.MustRegister(PropsUnmatchedTotal)
		registry.MustRegister(LiveUpdatesTotal)
		registry.MustRegister(BatchFailuresTotal)

		registry.MustRegister(LiveGames)
		registry.MustRegister(PropHitRate)
		registry.MustRegister(StreamSubscribers)

		registry.MustRegister(SweepDuration)
		registry.MustRegister(LivePollDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}
