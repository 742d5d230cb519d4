package depot

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Lazy wraps a shared dependency that is resolved on first access.
// This is useful for deferring resolution of expensive services until
// they're actually needed.
type Lazy[T any] struct {
	depot    Depot
	id       string
	once     sync.Once
	value    T
	err      error
	resolved atomic.Bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](d Depot, id string) *Lazy[T] {
	return &Lazy[T]{
		depot: d,
		id:    id,
	}
}

// Get resolves the dependency and returns it.
// The resolution happens only once; subsequent calls return the cached value.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = Get[T](l.depot, l.id)
		l.resolved.Store(l.err == nil)
	})

	return l.value, l.err
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.id, err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved.Load()
}

// ID returns the identifier of the dependency.
func (l *Lazy[T]) ID() string {
	return l.id
}

// OptionalLazy wraps an optional dependency that is resolved on first access.
// Returns the zero value without error if the identifier is not configured.
type OptionalLazy[T any] struct {
	depot    Depot
	id       string
	once     sync.Once
	value    T
	err      error
	resolved atomic.Bool
	found    atomic.Bool
}

// NewOptionalLazy creates a new optional lazy dependency wrapper.
func NewOptionalLazy[T any](d Depot, id string) *OptionalLazy[T] {
	return &OptionalLazy[T]{
		depot: d,
		id:    id,
	}
}

// Get resolves the dependency and returns it.
// Returns the zero value without error if the dependency is not found.
func (l *OptionalLazy[T]) Get() (T, error) {
	l.once.Do(func() {
		if !l.depot.Has(l.id) {
			l.resolved.Store(true)
			return
		}

		l.value, l.err = Get[T](l.depot, l.id)
		l.resolved.Store(l.err == nil)
		l.found.Store(l.err == nil)
	})

	return l.value, l.err
}

// IsResolved returns true if the dependency has been resolved.
func (l *OptionalLazy[T]) IsResolved() bool {
	return l.resolved.Load()
}

// IsFound returns true if the dependency was found (only valid after resolution).
func (l *OptionalLazy[T]) IsFound() bool {
	return l.found.Load()
}

// ID returns the identifier of the dependency.
func (l *OptionalLazy[T]) ID() string {
	return l.id
}

// Provider wraps a dependency that is built anew on each access.
type Provider[T any] struct {
	depot   Depot
	id      string
	options Options
}

// NewProvider creates a new provider; options are passed to every Build.
func NewProvider[T any](d Depot, id string, options Options) *Provider[T] {
	return &Provider[T]{
		depot:   d,
		id:      id,
		options: options,
	}
}

// Provide builds and returns a new instance of the dependency.
func (p *Provider[T]) Provide() (T, error) {
	return Build[T](p.depot, p.id, p.options)
}

// MustProvide builds and returns a new instance, panicking on error.
func (p *Provider[T]) MustProvide() T {
	value, err := p.Provide()
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.id, err))
	}

	return value
}

// ID returns the identifier of the dependency.
func (p *Provider[T]) ID() string {
	return p.id
}
