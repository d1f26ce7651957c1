// Package observability bundles tracing, metrics and server timing for the
// model inspection endpoints. All providers are optional; without them every
// operation is a no-op.
package observability

import (
	"context"
	"log/slog"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/nlstn/go-edm"

type config struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	serviceName    string
	serviceVersion string
	logger         *slog.Logger
	serverTiming   bool
}

// Option configures an Observability instance.
type Option func(*config)

// WithTracerProvider enables tracing through the given provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracerProvider = tp }
}

// WithMeterProvider enables metrics through the given provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) { c.meterProvider = mp }
}

// WithServiceName sets the service name reported in telemetry attributes.
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion sets the service version reported in telemetry
// attributes.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithLogger sets the logger used for observability diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithServerTiming enables Server-Timing response header metrics.
func WithServerTiming() Option {
	return func(c *config) { c.serverTiming = true }
}

// Observability carries the configured tracer and metric instruments.
type Observability struct {
	tracer       trace.Tracer
	requests     metric.Int64Counter
	latency      metric.Float64Histogram
	logger       *slog.Logger
	serviceName  string
	serverTiming bool
}

// New creates an Observability instance. Missing providers default to no-op
// implementations.
func New(opts ...Option) (*Observability, error) {
	cfg := config{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		serviceName:    "edm-service",
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	tracer := cfg.tracerProvider.Tracer(instrumentationName, trace.WithInstrumentationVersion(cfg.serviceVersion))
	meter := cfg.meterProvider.Meter(instrumentationName)

	requests, err := meter.Int64Counter("edm.requests",
		metric.WithDescription("Number of model inspection requests"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram("edm.request.duration",
		metric.WithDescription("Request duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Observability{
		tracer:       tracer,
		requests:     requests,
		latency:      latency,
		logger:       cfg.logger,
		serviceName:  cfg.serviceName,
		serverTiming: cfg.serverTiming,
	}, nil
}

// Logger returns the configured logger.
func (o *Observability) Logger() *slog.Logger { return o.logger }

// StartResolve starts a span covering a single resolution operation.
func (o *Observability) StartResolve(ctx context.Context, operation, name string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, "edm.resolve."+operation,
		trace.WithAttributes(
			attribute.String("edm.identifier", name),
			attribute.String("service.name", o.serviceName),
		))
}

// RecordRequest counts a finished request and records its duration.
func (o *Observability) RecordRequest(ctx context.Context, route string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("edm.route", route))
	o.requests.Add(ctx, 1, attrs)
	o.latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}

// StartTiming starts a Server-Timing metric for the given phase. The returned
// stop function is safe to call when server timing is disabled or no timing
// header is attached to the context.
func (o *Observability) StartTiming(ctx context.Context, phase string) func() {
	if !o.serverTiming {
		return func() {}
	}
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return func() {}
	}
	m := timing.NewMetric(phase).Start()
	return func() { m.Stop() }
}

// ServerTimingEnabled reports whether Server-Timing headers are emitted.
func (o *Observability) ServerTimingEnabled() bool { return o.serverTiming }
