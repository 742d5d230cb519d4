// Package tracing records container activity as OpenTelemetry spans.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/depot"
)

// Config configures the tracing middleware.
type Config struct {
	// Tracer creates the spans.
	// If nil, the global tracer provider's tracer is used.
	Tracer trace.Tracer

	// Disabled turns the middleware into a pass-through.
	Disabled bool
}

// Middleware creates one span per Get and Build call.
type Middleware struct {
	tracer trace.Tracer
}

var _ depot.Middleware = (*Middleware)(nil)

// New creates the tracing middleware.
func New(cfg Config) *Middleware {
	if cfg.Disabled {
		return &Middleware{}
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(InstrumentationName)
	}

	return &Middleware{tracer: tracer}
}

// BeforeResolve implements depot.Middleware.
func (m *Middleware) BeforeResolve(ctx context.Context, id string) (context.Context, error) {
	return m.start(ctx, SpanGet, id), nil
}

// AfterResolve implements depot.Middleware.
func (m *Middleware) AfterResolve(ctx context.Context, _ string, service any, err error) error {
	m.end(ctx, service, err)
	return nil
}

// BeforeBuild implements depot.Middleware.
func (m *Middleware) BeforeBuild(ctx context.Context, id string, options depot.Options) (context.Context, error) {
	ctx = m.start(ctx, SpanBuild, id)
	if m.tracer != nil {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int(AttrOptionCount, len(options)))
	}
	return ctx, nil
}

// AfterBuild implements depot.Middleware.
func (m *Middleware) AfterBuild(ctx context.Context, _ string, service any, err error) error {
	m.end(ctx, service, err)
	return nil
}

// start opens a span; the returned context carries it.
func (m *Middleware) start(ctx context.Context, name, id string) context.Context {
	if m.tracer == nil {
		return ctx
	}

	ctx, _ = m.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrService, id),
			attribute.String(AttrOperation, name),
		),
	)

	return ctx
}

// end records the outcome on the span opened by start and ends it.
func (m *Middleware) end(ctx context.Context, service any, err error) {
	if m.tracer == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := depot.ErrorCode(err); code != 0 {
			span.SetAttributes(attribute.Int(AttrErrorCode, code))
		}
		return
	}

	span.SetAttributes(attribute.String(AttrInstanceType, fmt.Sprintf("%T", service)))
	span.SetStatus(codes.Ok, "")
}
