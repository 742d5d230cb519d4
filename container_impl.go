package depot

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// containerImpl implements Depot.
type containerImpl struct {
	services        map[string]any        // id -> built instance
	factories       map[string]FactoryRef // id -> factory, possibly a class awaiting instantiation
	aliases         map[string]string     // alias -> target as configured
	resolvedAliases map[string]string     // alias -> terminal id
	initialized     bool

	types      *Types
	logger     *zap.Logger
	middleware *middlewareChain
	inflight   singleflight.Group
	mu         sync.RWMutex
}

// newContainerImpl creates an empty container implementation.
func newContainerImpl(opts ...Option) *containerImpl {
	merged := mergeOptions(opts)

	c := &containerImpl{
		services:        make(map[string]any),
		factories:       make(map[string]FactoryRef),
		aliases:         make(map[string]string),
		resolvedAliases: make(map[string]string),
		types:           merged.types,
		logger:          merged.logger,
		middleware:      newMiddlewareChain(),
	}
	for _, mw := range merged.middleware {
		c.middleware.add(mw)
	}

	return c
}

// Get returns the shared instance for id.
func (c *containerImpl) Get(id string) (any, error) {
	ctx := context.Background()
	chain := c.chain()

	// Call middleware before resolve
	ctx, err := chain.beforeResolve(ctx, id)
	if err != nil {
		return nil, err
	}

	service, err := c.get(id)

	// Call middleware after resolve
	if mwErr := chain.afterResolve(ctx, id, service, err); mwErr != nil {
		return nil, mwErr
	}

	return service, err
}

// get performs the actual shared retrieval without middleware.
func (c *containerImpl) get(requested string) (any, error) {
	c.mu.RLock()
	if service, ok := c.services[requested]; ok {
		c.mu.RUnlock()
		return service, nil
	}
	id := c.terminal(requested)
	c.mu.RUnlock()

	// Alias of an already cached service
	if id != requested {
		c.mu.Lock()
		if service, ok := c.services[id]; ok {
			c.services[requested] = service
			c.mu.Unlock()
			return service, nil
		}
		c.mu.Unlock()
	}

	// Concurrent first access to one terminal shares a single factory call
	service, err, _ := c.inflight.Do(id, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.services[id]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		created, err := c.create(id, nil)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()

		// Double-check after acquiring write lock
		if existing, ok := c.services[id]; ok {
			return existing, nil
		}
		c.services[id] = created

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	if id != requested {
		c.mu.Lock()
		if existing, ok := c.services[requested]; ok {
			service = existing
		} else {
			c.services[requested] = service
		}
		c.mu.Unlock()
	}

	return service, nil
}

// Build creates a fresh instance for id on every call.
func (c *containerImpl) Build(id string, options Options) (any, error) {
	ctx := context.Background()
	chain := c.chain()

	ctx, err := chain.beforeBuild(ctx, id, options)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	terminal := c.terminal(id)
	c.mu.RUnlock()

	service, err := c.create(terminal, options)

	if mwErr := chain.afterBuild(ctx, id, service, err); mwErr != nil {
		return nil, mwErr
	}

	return service, err
}

// Has checks if id resolves to a cached service or a configured factory.
func (c *containerImpl) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	terminal := c.terminal(id)
	if _, ok := c.services[terminal]; ok {
		return true
	}
	_, ok := c.factories[terminal]

	return ok
}

// Use adds middleware to the container.
// Middleware is called in the order they are added.
func (c *containerImpl) Use(middleware Middleware) {
	if middleware == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware.add(middleware)
}

// Types returns the container's type registry.
func (c *containerImpl) Types() *Types {
	return c.types
}

// create invokes the factory for a terminal identifier.
// Errors outside the container taxonomy are wrapped as creation failures.
func (c *containerImpl) create(id string, options Options) (any, error) {
	factory, err := c.resolveFactory(id)
	if err != nil {
		return nil, err
	}

	service, err := factory.Create(c, id, options)
	if err != nil {
		if IsContainerError(err) {
			return nil, err
		}

		c.logger.Warn("service creation failed",
			zap.String("service", id),
			zap.Error(err),
		)

		return nil, ErrServiceNotCreated(id, err)
	}

	return service, nil
}

// resolveFactory returns the factory configured for a terminal identifier,
// instantiating and storing a factory class on first use. Class constructors
// run without c.mu held; the instance is stored only if the entry still names
// the same unresolved class, otherwise the lookup starts over.
func (c *containerImpl) resolveFactory(id string) (Factory, error) {
	for {
		c.mu.RLock()
		ref, ok := c.factories[id]
		c.mu.RUnlock()

		if !ok {
			return nil, ErrFactoryNotFound(id)
		}
		if ref.factory != nil {
			return ref.factory, nil
		}

		factory, ok := c.types.Factory(ref.class)
		if !ok {
			return nil, ErrFactoryNotFound(id)
		}

		if stored, done := c.storeFactory(id, ref.class, factory); done {
			return stored, nil
		}
	}
}

// storeFactory memoizes factory for id if the entry is still the unresolved
// class. It returns the factory callers should use and whether the lookup is
// settled.
func (c *containerImpl) storeFactory(id, class string, factory Factory) (Factory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.factories[id]
	switch {
	case !ok || current.class != class:
		return nil, false
	case current.factory != nil:
		return current.factory, true
	}

	c.factories[id] = FactoryRef{class: class, factory: factory}
	c.logger.Debug("factory class loaded",
		zap.String("service", id),
		zap.String("class", class),
	)

	return factory, true
}

// terminal resolves id through the flattened alias table. Must hold c.mu.
func (c *containerImpl) terminal(id string) string {
	if target, ok := c.resolvedAliases[id]; ok {
		return target
	}
	return id
}

// chain returns a snapshot of the middleware chain.
func (c *containerImpl) chain() *middlewareChain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.middleware.snapshot()
}
