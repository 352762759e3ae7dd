package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the conversions counter.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ConversionCollector bundles Prometheus metrics for the batched conversion
// engine: per-item outcomes, batch latency and in-flight batches.
type ConversionCollector struct {
	gatherer prometheus.Gatherer

	Conversions    *prometheus.CounterVec
	BatchDurations *prometheus.HistogramVec
	BatchInflight  prometheus.Gauge
}

// NewConversionCollector registers conversion metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewConversionCollector(reg prometheus.Registerer) (*ConversionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	conversions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "keplerian_conversions_total",
		Help: "Total number of element conversions, labeled by direction and outcome.",
	}, []string{"direction", "outcome"})
	conversions, err := registerCounterVec(reg, conversions, "keplerian_conversions_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "keplerian_batch_duration_seconds",
		Help:    "Batched conversion latency in seconds.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"direction"})
	durations, err = registerHistogramVec(reg, durations, "keplerian_batch_duration_seconds")
	if err != nil {
		return nil, err
	}

	inflight, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "keplerian_batch_inflight",
		Help: "Number of batched conversions currently running.",
	}), "keplerian_batch_inflight")
	if err != nil {
		return nil, err
	}

	return &ConversionCollector{
		gatherer:       gatherer,
		Conversions:    conversions,
		BatchDurations: durations,
		BatchInflight:  inflight,
	}, nil
}

// ObserveItem records the outcome of a single conversion.
func (c *ConversionCollector) ObserveItem(direction string, err error) {
	if c == nil || c.Conversions == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.Conversions.WithLabelValues(direction, outcome).Inc()
}

// ObserveBatch records the wall-clock duration of a whole batch.
func (c *ConversionCollector) ObserveBatch(direction string, seconds float64) {
	if c == nil || c.BatchDurations == nil {
		return
	}
	c.BatchDurations.WithLabelValues(direction).Observe(seconds)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ConversionCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
