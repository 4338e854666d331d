package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchCycles    *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	fallbacksUsed  *prometheus.CounterVec
	lastCarry      *prometheus.GaugeVec
	lastVolatility *prometheus.GaugeVec
	cycleDuration  *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchCycles: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxlens_fetch_cycles_total",
				Help: "Total number of snapshot fetch cycles",
			},
			[]string{"result"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxlens_provider_errors_total",
				Help: "Total number of upstream provider errors",
			},
			[]string{"provider"},
		),
		fallbacksUsed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxlens_fallbacks_total",
				Help: "Total number of fallback values substituted",
			},
			[]string{"field"},
		),
		lastCarry: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxlens_last_carry",
				Help: "Last computed carry for a currency",
			},
			[]string{"code"},
		),
		lastVolatility: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxlens_last_volatility",
				Help: "Last computed annualized volatility for a currency",
			},
			[]string{"code"},
		),
		cycleDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxlens_cycle_duration_seconds",
				Help:    "Duration of fetch cycles in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"trigger"},
		),
	}
}

// RecordFetchCycle records a completed fetch cycle.
func (r *Recorder) RecordFetchCycle(result string) {
	r.fetchCycles.WithLabelValues(result).Inc()
}

// RecordProviderError records an upstream provider error.
func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

// RecordFallback records a fallback substitution for a field.
func (r *Recorder) RecordFallback(field string) {
	r.fallbacksUsed.WithLabelValues(field).Inc()
}

// RecordCarry records the last carry value for a currency.
func (r *Recorder) RecordCarry(code string, carry float64) {
	r.lastCarry.WithLabelValues(code).Set(carry)
}

// RecordVolatility records the last volatility value for a currency.
func (r *Recorder) RecordVolatility(code string, vol float64) {
	r.lastVolatility.WithLabelValues(code).Set(vol)
}

// RecordCycleDuration records fetch cycle duration in seconds.
func (r *Recorder) RecordCycleDuration(trigger string, seconds float64) {
	r.cycleDuration.WithLabelValues(trigger).Observe(seconds)
}
