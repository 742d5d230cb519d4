package depot

import "context"

// Middleware provides hooks for intercepting container operations.
// Middleware can be used for logging, metrics, tracing, testing, etc.
type Middleware interface {
	// BeforeResolve is called before Get.
	// The returned context is handed to the following middleware and to
	// AfterResolve. Return error to abort resolution.
	BeforeResolve(ctx context.Context, id string) (context.Context, error)

	// AfterResolve is called after Get.
	// Called even if resolution failed (service and err may both be set).
	AfterResolve(ctx context.Context, id string, service any, err error) error

	// BeforeBuild is called before Build.
	// The returned context is handed to the following middleware and to
	// AfterBuild. Return error to abort the build.
	BeforeBuild(ctx context.Context, id string, options Options) (context.Context, error)

	// AfterBuild is called after Build.
	// Called even if the build failed.
	AfterBuild(ctx context.Context, id string, service any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{
		middleware: make([]Middleware, 0),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	m.middleware = append(m.middleware, middleware)
}

// snapshot returns a copy that is safe to iterate without holding the container lock.
func (m *middlewareChain) snapshot() *middlewareChain {
	out := make([]Middleware, len(m.middleware))
	copy(out, m.middleware)
	return &middlewareChain{middleware: out}
}

// beforeResolve calls BeforeResolve on all middleware, threading the context.
func (m *middlewareChain) beforeResolve(ctx context.Context, id string) (context.Context, error) {
	for _, mw := range m.middleware {
		next, err := mw.BeforeResolve(ctx, id)
		if err != nil {
			return ctx, err
		}
		if next != nil {
			ctx = next
		}
	}
	return ctx, nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(ctx context.Context, id string, service any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(ctx, id, service, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// beforeBuild calls BeforeBuild on all middleware, threading the context.
func (m *middlewareChain) beforeBuild(ctx context.Context, id string, options Options) (context.Context, error) {
	for _, mw := range m.middleware {
		next, err := mw.BeforeBuild(ctx, id, options)
		if err != nil {
			return ctx, err
		}
		if next != nil {
			ctx = next
		}
	}
	return ctx, nil
}

// afterBuild calls AfterBuild on all middleware.
func (m *middlewareChain) afterBuild(ctx context.Context, id string, service any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterBuild(ctx, id, service, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// FuncMiddleware wraps functions as Middleware. Its before hooks pass the
// context through unchanged.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, id string) error
	AfterResolveFunc  func(ctx context.Context, id string, service any, err error) error
	BeforeBuildFunc   func(ctx context.Context, id string, options Options) error
	AfterBuildFunc    func(ctx context.Context, id string, service any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, id string) (context.Context, error) {
	if f.BeforeResolveFunc != nil {
		return ctx, f.BeforeResolveFunc(ctx, id)
	}
	return ctx, nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, id string, service any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(ctx, id, service, err)
	}
	return nil
}

// BeforeBuild implements Middleware.
func (f *FuncMiddleware) BeforeBuild(ctx context.Context, id string, options Options) (context.Context, error) {
	if f.BeforeBuildFunc != nil {
		return ctx, f.BeforeBuildFunc(ctx, id, options)
	}
	return ctx, nil
}

// AfterBuild implements Middleware.
func (f *FuncMiddleware) AfterBuild(ctx context.Context, id string, service any, err error) error {
	if f.AfterBuildFunc != nil {
		return f.AfterBuildFunc(ctx, id, service, err)
	}
	return nil
}
