// Package metrics provides the centralized Prometheus metrics registry
// for the prediction pipeline.
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
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hoopsight",
		Name:      "predictions_total",
		Help:      "Total number of game predictions produced",
	})
	ValueSignalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hoopsight",
		Name:      "value_signals_total",
		Help:      "Total number of value signals emitted",
	})
	PropPredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hoopsight",
		Name:      "prop_predictions_total",
		Help:      "Total number of player prop predictions produced",
	})
	RatingUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hoopsight",
		Name:      "rating_updates_total",
		Help:      "Total number of team rating updates applied",
	})
	ProviderFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hoopsight",
		Name:      "provider_fetches_total",
		Help:      "Total number of external provider fetches by provider and outcome",
	}, []string{"provider", "outcome"})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hoopsight",
		Name:      "current_bankroll",
		Help:      "Configured bankroll in currency units",
	})
	GamesScheduledToday = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hoopsight",
		Name:      "games_scheduled_today",
		Help:      "Number of games on today's slate",
	})
	WinnerAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hoopsight",
		Name:      "winner_accuracy",
		Help:      "Rolling winner prediction accuracy (0-1)",
	})
	SpreadAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hoopsight",
		Name:      "spread_accuracy",
		Help:      "Rolling against-the-spread accuracy excluding pushes (0-1)",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hoopsight",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of a full slate prediction run in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	RatingsRebuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hoopsight",
		Name:      "ratings_rebuild_duration_seconds",
		Help:      "Duration of a full season ratings rebuild in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(ValueSignalsTotal)
		registry.MustRegister(PropPredictionsTotal)
		registry.MustRegister(RatingUpdatesTotal)
		registry.MustRegister(ProviderFetchesTotal)

		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(GamesScheduledToday)
		registry.MustRegister(WinnerAccuracy)
		registry.MustRegister(SpreadAccuracy)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(RatingsRebuildDuration)
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

// RecordPrediction records a produced game prediction.
func RecordPrediction() {
	PredictionsTotal.Inc()
}

// RecordValueSignal records an emitted value signal.
func RecordValueSignal() {
	ValueSignalsTotal.Inc()
}

// RecordPropPrediction records a produced prop prediction.
func RecordPropPrediction() {
	PropPredictionsTotal.Inc()
}

// RecordRatingUpdate records an applied rating update.
func RecordRatingUpdate() {
	RatingUpdatesTotal.Inc()
}

// RecordProviderFetch records an external provider fetch outcome.
func RecordProviderFetch(provider string, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	ProviderFetchesTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordPredictionDuration records a slate prediction run duration.
func RecordPredictionDuration(durationSeconds float64) {
	PredictionDuration.Observe(durationSeconds)
}

// RecordRatingsRebuildDuration records a ratings rebuild duration.
func RecordRatingsRebuildDuration(durationSeconds float64) {
	RatingsRebuildDuration.Observe(durationSeconds)
}

// UpdateBankroll updates the configured bankroll gauge.
func UpdateBankroll(amount float64) {
	CurrentBankroll.Set(amount)
}

// UpdateSlateSize updates the scheduled games gauge.
func UpdateSlateSize(count float64) {
	GamesScheduledToday.Set(count)
}

// UpdateAccuracy updates the rolling accuracy gauges.
func UpdateAccuracy(winner, spread float64) {
	WinnerAccuracy.Set(winner)
	SpreadAccuracy.Set(spread)
}
