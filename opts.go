package depot

import "go.uber.org/zap"

// Option configures a container created by New.
type Option func(*options)

type options struct {
	types      *Types
	logger     *zap.Logger
	middleware []Middleware
}

func defaultOptions() options {
	return options{
		logger: zap.NewNop(),
	}
}

// WithTypes sets the type registry used for factory classes and invokables.
// Without it the container gets a fresh registry holding only the built-in
// invokable factory.
func WithTypes(types *Types) Option {
	return func(o *options) {
		o.types = types
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// WithMiddleware adds middleware in the given order.
func WithMiddleware(middleware ...Middleware) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, middleware...)
	}
}

// mergeOptions applies opts over the defaults.
func mergeOptions(opts []Option) options {
	merged := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&merged)
		}
	}

	if merged.types == nil {
		merged.types = NewTypes()
	}

	return merged
}
