package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/depot"
)

// codedErr carries an integer code.
type codedErr struct{}

func (codedErr) Error() string { return "quota exceeded" }
func (codedErr) Code() int     { return 429 }

type widget struct{}

// setupTestTracer creates a test tracer with an in-memory exporter.
func setupTestTracer(t *testing.T) (trace.Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	return provider.Tracer("test-tracer"), exporter
}

// getAttributeValue extracts an attribute value from a span.
func getAttributeValue(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func newTestDepot(t *testing.T, mw depot.Middleware) depot.Depot {
	t.Helper()

	d, err := depot.New(depot.Config{
		Factories: map[string]depot.FactoryRef{
			"widget": depot.Func(func(_ depot.Depot, _ string, _ depot.Options) (any, error) {
				return &widget{}, nil
			}),
			"limited": depot.Func(func(_ depot.Depot, _ string, _ depot.Options) (any, error) {
				return nil, codedErr{}
			}),
		},
		Aliases: map[string]string{"gadget": "widget"},
	}, depot.WithMiddleware(mw))
	require.NoError(t, err)

	return d
}

func TestMiddleware_GetSpan(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	d := newTestDepot(t, New(Config{Tracer: tracer}))

	_, err := d.Get("gadget")
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, SpanGet, span.Name)
	assert.Equal(t, trace.SpanKindInternal, span.SpanKind)
	assert.Equal(t, codes.Ok, span.Status.Code)

	service, found := getAttributeValue(span, AttrService)
	require.True(t, found)
	assert.Equal(t, "gadget", service.AsString())

	instanceType, found := getAttributeValue(span, AttrInstanceType)
	require.True(t, found)
	assert.Equal(t, "*tracing.widget", instanceType.AsString())
}

func TestMiddleware_BuildSpan(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	d := newTestDepot(t, New(Config{Tracer: tracer}))

	_, err := d.Build("widget", depot.Options{"a": 1, "b": 2})
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, SpanBuild, spans[0].Name)

	count, found := getAttributeValue(spans[0], AttrOptionCount)
	require.True(t, found)
	assert.Equal(t, int64(2), count.AsInt64())
}

func TestMiddleware_RecordsErrors(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	d := newTestDepot(t, New(Config{Tracer: tracer}))

	_, err := d.Get("limited")
	require.Error(t, err)
	_, err = d.Get("missing")
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	for _, span := range spans {
		assert.Equal(t, codes.Error, span.Status.Code)
		require.NotEmpty(t, span.Events)
		assert.Equal(t, "exception", span.Events[0].Name)
	}

	code, found := getAttributeValue(spans[0], AttrErrorCode)
	require.True(t, found)
	assert.Equal(t, int64(429), code.AsInt64())

	_, found = getAttributeValue(spans[1], AttrErrorCode)
	assert.False(t, found)
}

func TestMiddleware_LaterMiddlewareRejects(t *testing.T) {
	tracer, exporter := setupTestTracer(t)

	d := newTestDepot(t, New(Config{Tracer: tracer}))
	d.Use(&depot.FuncMiddleware{
		AfterResolveFunc: func(_ context.Context, _ string, _ any, _ error) error {
			return errors.New("rejected")
		},
	})

	_, err := d.Get("widget")
	require.Error(t, err)

	// The span is still ended and reports the factory outcome
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func TestMiddleware_Disabled(t *testing.T) {
	_, exporter := setupTestTracer(t)
	d := newTestDepot(t, New(Config{Disabled: true}))

	_, err := d.Get("widget")
	require.NoError(t, err)

	assert.Empty(t, exporter.GetSpans())
}

func TestMiddleware_SpanVisibleToLaterMiddleware(t *testing.T) {
	tracer, exporter := setupTestTracer(t)

	var seen trace.SpanContext
	d := newTestDepot(t, New(Config{Tracer: tracer}))
	d.Use(&depot.FuncMiddleware{
		BeforeBuildFunc: func(ctx context.Context, _ string, _ depot.Options) error {
			seen = trace.SpanContextFromContext(ctx)
			return nil
		},
	})

	_, err := d.Build("widget", nil)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.True(t, seen.IsValid())
	assert.Equal(t, spans[0].SpanContext.SpanID(), seen.SpanID())
}
