// Package metrics provides Prometheus metrics for the prediction engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"football-betting-engine/internal/markets"
)

// Analysis outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeEmpty   = "empty"
)

// EngineMetrics collects and exposes engine Prometheus metrics.
type EngineMetrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	PredictionsTotal *prometheus.CounterVec
	Confidence       *prometheus.HistogramVec
	ScenariosTotal   *prometheus.CounterVec
	StoreErrors      prometheus.Counter
	PublishErrors    prometheus.Counter
	AlertsTotal      prometheus.Counter
}

// NewEngineMetrics creates a collector on its own registry.
func NewEngineMetrics() *EngineMetrics {
	em := &EngineMetrics{
		registry: prometheus.NewRegistry(),

		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "football_analyses_total",
				Help: "Fixture analyses by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "football_analysis_duration_seconds",
				Help:    "Time to analyse one fixture",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~0.8s
			},
		),
		PredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "football_predictions_total",
				Help: "Predictions that cleared their threshold, by market",
			},
			[]string{"market"},
		),
		Confidence: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "football_prediction_confidence",
				Help:    "Final confidence of emitted predictions",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"market"},
		),
		ScenariosTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "football_scenarios_total",
				Help: "Selected scenarios by label",
			},
			[]string{"label"},
		),
		StoreErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "football_store_errors_total",
				Help: "Failed report writes",
			},
		),
		PublishErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "football_publish_errors_total",
				Help: "Failed report publishes",
			},
		),
		AlertsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "football_alerts_total",
				Help: "High confidence alerts emitted",
			},
		),
	}

	em.registry.MustRegister(
		em.AnalysesTotal,
		em.AnalysisDuration,
		em.PredictionsTotal,
		em.Confidence,
		em.ScenariosTotal,
		em.StoreErrors,
		em.PublishErrors,
		em.AlertsTotal,
	)
	return em
}

// Registry returns the Prometheus registry.
func (em *EngineMetrics) Registry() *prometheus.Registry {
	return em.registry
}

// RecordAnalysis records one finished analysis.
func (em *EngineMetrics) RecordAnalysis(outcome string, durationSec float64) {
	em.AnalysesTotal.WithLabelValues(outcome).Inc()
	if durationSec > 0 {
		em.AnalysisDuration.Observe(durationSec)
	}
}

// RecordScenario records a selected scenario label.
func (em *EngineMetrics) RecordScenario(label string) {
	em.ScenariosTotal.WithLabelValues(label).Inc()
}

// RecordPredictions records emitted predictions per market.
func (em *EngineMetrics) RecordPredictions(preds []markets.Prediction) {
	for _, p := range preds {
		m := p.Bet.Market.String()
		em.PredictionsTotal.WithLabelValues(m).Inc()
		em.Confidence.WithLabelValues(m).Observe(p.Confidence)
	}
}

// RecordStoreError counts a failed report write.
func (em *EngineMetrics) RecordStoreError() { em.StoreErrors.Inc() }

// RecordPublishError counts a failed publish.
func (em *EngineMetrics) RecordPublishError() { em.PublishErrors.Inc() }

// RecordAlert counts an emitted alert.
func (em *EngineMetrics) RecordAlert() { em.AlertsTotal.Inc() }
