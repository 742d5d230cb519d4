package depot

import "fmt"

// Get returns the shared instance for id with type safety.
func Get[T any](d Depot, id string) (T, error) {
	var zero T

	instance, err := d.Get(id)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(id, instance)
	}

	return typed, nil
}

// Build creates a new instance for id with type safety.
func Build[T any](d Depot, id string, options Options) (T, error) {
	var zero T

	instance, err := d.Build(id, options)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(id, instance)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](d Depot, id string) T {
	instance, err := Get[T](d, id)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", id, err))
	}

	return instance
}

// GetByType resolves the service registered under TypeName[T]().
func GetByType[T any](d Depot) (T, error) {
	return Get[T](d, TypeName[T]())
}

// BuildByType builds the service registered under TypeName[T]().
func BuildByType[T any](d Depot, options Options) (T, error) {
	return Build[T](d, TypeName[T](), options)
}

// SetTypedFactory registers a typed factory function for id.
func SetTypedFactory[T any](d Depot, id string, factory func(d Depot, options Options) (T, error)) error {
	if factory == nil {
		return ErrInvalidArgument(fmt.Sprintf("factory for '%s' cannot be nil", id))
	}

	return d.SetFactory(id, Func(func(c Depot, _ string, options Options) (any, error) {
		return factory(c, options)
	}))
}

// SetValue registers a pre-built instance.
func SetValue[T any](d Depot, id string, instance T) error {
	return d.SetService(id, instance)
}
