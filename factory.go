package depot

import "fmt"

// InvokableFactoryClass is the class name of the built-in invokable factory.
// It is registered in every Types registry.
const InvokableFactoryClass = "depot.InvokableFactory"

// Factory creates a service instance.
//
// id is the terminal identifier being built (aliases already resolved) and
// options is whatever the caller passed to Build, or nil for Get.
// Create may Get other identifiers but must not Get its own id; that call
// never returns.
type Factory interface {
	Create(c Depot, id string, options Options) (any, error)
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc func(c Depot, id string, options Options) (any, error)

// Create implements Factory.
func (f FactoryFunc) Create(c Depot, id string, options Options) (any, error) {
	return f(c, id, options)
}

// FactoryRef is a factory entry: either a resolved Factory or the class name
// of a factory still to be instantiated from the container's Types.
// The zero value is invalid.
type FactoryRef struct {
	class   string
	factory Factory
}

// Use references an existing Factory.
func Use(factory Factory) FactoryRef {
	return FactoryRef{factory: factory}
}

// Func references a factory function.
func Func(fn FactoryFunc) FactoryRef {
	if fn == nil {
		return FactoryRef{}
	}
	return FactoryRef{factory: fn}
}

// Class references a factory class registered with Types.RegisterFactory.
// The class is instantiated on first use and the instance is kept.
func Class(name string) FactoryRef {
	return FactoryRef{class: name}
}

// ClassName returns the factory class name, or "" for a factory given by value.
func (r FactoryRef) ClassName() string {
	return r.class
}

// Resolved reports whether the entry already holds a Factory.
func (r FactoryRef) Resolved() bool {
	return r.factory != nil
}

// IsZero reports whether the reference is empty.
func (r FactoryRef) IsZero() bool {
	return r.class == "" && r.factory == nil
}

// String returns a human-readable representation of the reference.
func (r FactoryRef) String() string {
	switch {
	case r.class != "":
		return r.class
	case r.factory != nil:
		return fmt.Sprintf("%T", r.factory)
	default:
		return "<none>"
	}
}

// InvokableFactory constructs the type registered in Types under the
// requested identifier, passing options as its only argument.
type InvokableFactory struct{}

// Create implements Factory.
func (InvokableFactory) Create(c Depot, id string, options Options) (any, error) {
	ctor, ok := c.Types().Constructor(id)
	if !ok {
		return nil, ErrServiceNotFound(id)
	}

	return ctor(options)
}
