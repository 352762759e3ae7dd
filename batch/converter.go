// Package batch runs element conversions across slices of orbits on a worker
// pool. Every conversion is independent, so batches parallelize with no
// coordination beyond handing out indices.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/keplerian/core"
	"github.com/signalsfoundry/keplerian/internal/logging"
	"github.com/signalsfoundry/keplerian/internal/observability"
	"github.com/signalsfoundry/keplerian/model"
)

const tracerName = "github.com/signalsfoundry/keplerian/batch"

// Directions label logs, metrics and spans per conversion kind.
const (
	DirectionRVToCOE = "rv2coe"
	DirectionCOEToRV = "coe2rv"
	DirectionRVToMEE = "rv2mee"
)

// Converter fans conversion work out over a fixed pool of goroutines.
// The zero value is not usable; construct with NewConverter.
type Converter struct {
	workers int
	tol     float64
	log     logging.Logger
	metrics *observability.ConversionCollector
	tracer  trace.Tracer
}

// Option configures a Converter.
type Option func(*config)

type config struct {
	workers    int
	tol        float64
	log        logging.Logger
	registerer prometheus.Registerer
	tp         trace.TracerProvider
}

// WithWorkers sets the worker-pool size. Values below one fall back to
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithTolerance sets the circular/equatorial classification tolerance used
// by element recovery. Non-positive values select core.DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(c *config) { c.tol = tol }
}

// WithLogger sets the structured logger. The default drops all logs.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithRegisterer enables conversion metrics on the given Prometheus
// registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}

// WithTracerProvider sets the OpenTelemetry tracer provider for per-batch
// spans. The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tp = tp }
}

// NewConverter builds a Converter from the supplied options. It fails only
// when metric registration does.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.workers < 1 {
		cfg.workers = runtime.NumCPU()
	}
	if cfg.tol <= 0 {
		cfg.tol = core.DefaultTolerance
	}
	if cfg.log == nil {
		cfg.log = logging.Noop()
	}

	var metrics *observability.ConversionCollector
	if cfg.registerer != nil {
		var err error
		metrics, err = observability.NewConversionCollector(cfg.registerer)
		if err != nil {
			return nil, fmt.Errorf("register conversion metrics: %w", err)
		}
	}

	tracer := otel.Tracer(tracerName)
	if cfg.tp != nil {
		tracer = cfg.tp.Tracer(tracerName)
	}

	return &Converter{
		workers: cfg.workers,
		tol:     cfg.tol,
		log:     cfg.log,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

// ClassicalFromStates recovers classical elements for every state in states
// around a body of gravitational parameter k (km^3/s^2). Results and errors
// are index-aligned with the input; errs[i] is nil on success,
// core.ErrDegenerateOrbit for rectilinear items and ctx.Err() for items left
// unprocessed at cancellation.
func (c *Converter) ClassicalFromStates(ctx context.Context, k float64, states []model.StateVector) ([]model.ClassicalElements, []error) {
	return runBatch(ctx, c, DirectionRVToCOE, states, func(sv model.StateVector) (model.ClassicalElements, error) {
		return core.ClassicalFromState(k, sv, c.tol)
	})
}

// StatesFromClassical converts classical element sets into Cartesian states.
// The underlying conversion is total, so per-item errors only report
// cancellation.
func (c *Converter) StatesFromClassical(ctx context.Context, k float64, els []model.ClassicalElements) ([]model.StateVector, []error) {
	return runBatch(ctx, c, DirectionCOEToRV, els, func(el model.ClassicalElements) (model.StateVector, error) {
		return core.StateFromClassical(k, el), nil
	})
}

// EquinoctialFromStates recovers modified equinoctial elements for every
// state in states, chaining classical recovery and the equinoctial remap.
func (c *Converter) EquinoctialFromStates(ctx context.Context, k float64, states []model.StateVector) ([]model.EquinoctialElements, []error) {
	return runBatch(ctx, c, DirectionRVToMEE, states, func(sv model.StateVector) (model.EquinoctialElements, error) {
		return core.EquinoctialFromState(k, sv, c.tol)
	})
}

func runBatch[In, Out any](ctx context.Context, c *Converter, direction string, items []In, convert func(In) (Out, error)) ([]Out, []error) {
	results := make([]Out, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, errs
	}

	ctx, log := logging.WithJobLogger(ctx, c.log)
	log = log.With(logging.String("direction", direction))

	ctx, span := c.tracer.Start(ctx, "batch/"+direction, trace.WithAttributes(
		attribute.String("conversion.direction", direction),
		attribute.Int("batch.size", len(items)),
	))
	defer span.End()

	if c.metrics != nil {
		c.metrics.BatchInflight.Inc()
		defer c.metrics.BatchInflight.Dec()
	}
	start := time.Now()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = convert(items[i])
			}
		}()
	}

	cancelled := -1
feed:
	for i := range items {
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = i
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled >= 0 {
		for i := cancelled; i < len(items); i++ {
			errs[i] = ctx.Err()
		}
	}

	failures := 0
	for i, err := range errs {
		c.metrics.ObserveItem(direction, err)
		if err == nil {
			continue
		}
		failures++
		log.Warn(ctx, "conversion failed", logging.Int("index", i), logging.Err(err))
	}

	elapsed := time.Since(start)
	c.metrics.ObserveBatch(direction, elapsed.Seconds())
	span.SetAttributes(attribute.Int("batch.failures", failures))
	if failures > 0 {
		span.RecordError(fmt.Errorf("%d of %d conversions failed", failures, len(items)))
	}
	log.Debug(ctx, "batch complete",
		logging.Int("size", len(items)),
		logging.Int("failures", failures),
		logging.Float("duration_seconds", elapsed.Seconds()))

	return results, errs
}
