package tracing

// Span attribute keys.
const (
	AttrService      = "depot.service"
	AttrOperation    = "depot.operation"
	AttrInstanceType = "depot.instance_type"
	AttrErrorCode    = "depot.error_code"
	AttrOptionCount  = "depot.option_count"
)

// Span names.
const (
	SpanGet   = "depot.get"
	SpanBuild = "depot.build"
)

// InstrumentationName is the tracer name used when none is configured.
const InstrumentationName = "github.com/xraph/depot/tracing"
