package depot

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Constructor builds an instance of an invokable type from Build options.
// options is nil when the instance is requested through Get.
type Constructor func(options Options) (any, error)

// Types maps names to factory classes and invokable constructors.
//
// It stands in for class lookup by name: a FactoryRef created with Class is
// instantiated from the factory classes registered here, and the built-in
// InvokableFactory constructs invokable types through their constructors.
type Types struct {
	factories    map[string]func() Factory
	constructors map[string]Constructor
	mu           sync.RWMutex
}

// NewTypes creates a registry holding the built-in invokable factory.
func NewTypes() *Types {
	t := &Types{
		factories:    make(map[string]func() Factory),
		constructors: make(map[string]Constructor),
	}
	t.factories[InvokableFactoryClass] = func() Factory { return InvokableFactory{} }

	return t
}

// RegisterFactory registers a factory class under name. newFactory is called
// with no arguments the first time a container needs the class.
func (t *Types) RegisterFactory(name string, newFactory func() Factory) error {
	if name == "" {
		return ErrInvalidArgument("factory class name cannot be empty")
	}
	if newFactory == nil {
		return ErrInvalidArgument(fmt.Sprintf("factory class '%s' has no constructor", name))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.factories[name] = newFactory

	return nil
}

// RegisterConstructor registers an invokable type under name.
func (t *Types) RegisterConstructor(name string, ctor Constructor) error {
	if name == "" {
		return ErrInvalidArgument("type name cannot be empty")
	}
	if ctor == nil {
		return ErrInvalidArgument(fmt.Sprintf("type '%s' has no constructor", name))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.constructors[name] = ctor

	return nil
}

// Factory instantiates the factory class registered under name.
func (t *Types) Factory(name string) (Factory, bool) {
	t.mu.RLock()
	newFactory, ok := t.factories[name]
	t.mu.RUnlock()

	if !ok {
		return nil, false
	}

	f := newFactory()
	if f == nil {
		return nil, false
	}

	return f, true
}

// Constructor returns the constructor registered under name.
func (t *Types) Constructor(name string) (Constructor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ctor, ok := t.constructors[name]
	return ctor, ok
}

// HasFactory checks if a factory class is registered.
func (t *Types) HasFactory(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.factories[name]
	return ok
}

// HasConstructor checks if an invokable type is registered.
func (t *Types) HasConstructor(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.constructors[name]
	return ok
}

// Names returns the sorted names of all factory classes and invokable types.
func (t *Types) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.factories)+len(t.constructors))
	for name := range t.factories {
		names = append(names, name)
	}
	for name := range t.constructors {
		if _, dup := t.factories[name]; !dup {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names
}

// TypeName returns the package-qualified name of T, with pointers stripped.
// It is a stable identifier for registering and requesting services by type.
//
//	depot.TypeName[*SimCard]()          // "example.com/phone.SimCard"
//	depot.TypeName[SimCardInterface]()  // "example.com/phone.SimCardInterface"
func TypeName[T any]() string {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Name() == "" {
		return typ.String()
	}
	if typ.PkgPath() == "" {
		return typ.Name()
	}

	return typ.PkgPath() + "." + typ.Name()
}

// RegisterType registers T as an invokable type under TypeName[T]().
func RegisterType[T any](t *Types, ctor func(options Options) (T, error)) error {
	if ctor == nil {
		return ErrInvalidArgument(fmt.Sprintf("type '%s' has no constructor", TypeName[T]()))
	}

	return t.RegisterConstructor(TypeName[T](), func(options Options) (any, error) {
		return ctor(options)
	})
}

// RegisterFactoryType registers F as a factory class under TypeName[F]().
// F's zero value is used as the factory instance, so F must implement
// Factory with a value or pointer receiver.
func RegisterFactoryType[F Factory](t *Types) error {
	return t.RegisterFactory(TypeName[F](), func() Factory {
		return newZero[F]()
	})
}

// newZero returns a usable zero value of F, allocating for pointer types.
func newZero[F any]() F {
	var zero F

	typ := reflect.TypeOf((*F)(nil)).Elem()
	if typ.Kind() == reflect.Pointer {
		return reflect.New(typ.Elem()).Interface().(F)
	}

	return zero
}
