// Package metrics records container activity as Prometheus metrics.
//
//	m, err := metrics.New(metrics.Config{Registerer: prometheus.DefaultRegisterer})
//	d, err := depot.New(cfg, depot.WithMiddleware(m))
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xraph/depot"
)

// Operation label values.
const (
	OperationGet   = "get"
	OperationBuild = "build"
)

// Outcome label values.
const (
	OutcomeOK              = "ok"
	OutcomeNotFound        = "not_found"
	OutcomeNotCreated      = "not_created"
	OutcomeCyclicAlias     = "cyclic_alias"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeError           = "error"
)

// Config configures the metrics middleware.
type Config struct {
	// Namespace prefixes every metric name. Defaults to "depot".
	Namespace string

	// Registerer receives the collectors. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer

	// Buckets are the duration histogram buckets in seconds.
	// Defaults to prometheus.DefBuckets.
	Buckets []float64
}

// Middleware counts Get and Build calls per identifier and outcome and
// observes their latency.
type Middleware struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var _ depot.Middleware = (*Middleware)(nil)

type startKey struct{}

// New creates the middleware and registers its collectors. Collectors that
// are already registered under the same names are reused.
func New(cfg Config) (*Middleware, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = "depot"
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "operations_total",
		Help:      "Container Get and Build calls by identifier and outcome.",
	}, []string{"operation", "service", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "operation_duration_seconds",
		Help:      "Latency of container Get and Build calls.",
		Buckets:   cfg.Buckets,
	}, []string{"operation"})

	var err error
	if operations, err = register(cfg.Registerer, operations); err != nil {
		return nil, err
	}
	if duration, err = register(cfg.Registerer, duration); err != nil {
		return nil, err
	}

	return &Middleware{
		operations: operations,
		duration:   duration,
	}, nil
}

// register registers c, returning the existing collector on a duplicate.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// BeforeResolve implements depot.Middleware.
func (m *Middleware) BeforeResolve(ctx context.Context, _ string) (context.Context, error) {
	return context.WithValue(ctx, startKey{}, time.Now()), nil
}

// AfterResolve implements depot.Middleware.
func (m *Middleware) AfterResolve(ctx context.Context, id string, _ any, err error) error {
	m.observe(ctx, OperationGet, id, err)
	return nil
}

// BeforeBuild implements depot.Middleware.
func (m *Middleware) BeforeBuild(ctx context.Context, _ string, _ depot.Options) (context.Context, error) {
	return context.WithValue(ctx, startKey{}, time.Now()), nil
}

// AfterBuild implements depot.Middleware.
func (m *Middleware) AfterBuild(ctx context.Context, id string, _ any, err error) error {
	m.observe(ctx, OperationBuild, id, err)
	return nil
}

func (m *Middleware) observe(ctx context.Context, operation, id string, err error) {
	m.operations.WithLabelValues(operation, id, Outcome(err)).Inc()

	if start, ok := ctx.Value(startKey{}).(time.Time); ok {
		m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// Outcome maps an operation error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, depot.ErrServiceNotFoundSentinel):
		return OutcomeNotFound
	case errors.Is(err, depot.ErrServiceNotCreatedSentinel):
		return OutcomeNotCreated
	case errors.Is(err, depot.ErrCyclicAliasSentinel):
		return OutcomeCyclicAlias
	case errors.Is(err, depot.ErrInvalidArgumentSentinel):
		return OutcomeInvalidArgument
	default:
		return OutcomeError
	}
}
