package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type InferencePrometheusMetrics struct {
	parseResults   *prometheus.CounterVec
	parseConfHist  *prometheus.HistogramVec
	parseDecisions *prometheus.CounterVec
}

func newInferencePrometheusMetrics(reg prometheus.Registerer) *InferencePrometheusMetrics {
	mtc := &InferencePrometheusMetrics{
		parseResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catatduit_parse_results_total",
				Help: "Number of parse results by engine and intent",
			},
			[]string{"engine", "intent"},
		),
		parseConfHist: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catatduit_parse_confidence",
				Help:    "Confidence score distribution of parse results",
				Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.85, 0.9, 0.95, 1},
			},
			[]string{"engine"},
		),
		parseDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catatduit_parse_decisions_total",
				Help: "Number of threshold decisions by outcome",
			},
			[]string{"engine", "decision"},
		),
	}

	reg.MustRegister(mtc.parseResults)
	reg.MustRegister(mtc.parseConfHist)
	reg.MustRegister(mtc.parseDecisions)

	return mtc
}

func (m *InferencePrometheusMetrics) Record(engine, intent string, confidence float64) {
	if m == nil {
		return
	}

	m.parseResults.WithLabelValues(engine, intent).Inc()
	m.parseConfHist.WithLabelValues(engine).Observe(confidence)
}

func (m *InferencePrometheusMetrics) RecordDecision(engine, decision string) {
	if m == nil {
		return
	}

	m.parseDecisions.WithLabelValues(engine, decision).Inc()
}
