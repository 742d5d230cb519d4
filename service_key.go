package depot

// ServiceKey provides type-safe service identification.
// Use NewServiceKey to create typed keys for your services.
type ServiceKey[T any] struct {
	id string
}

// NewServiceKey creates a new typed service key.
// The type parameter T ensures type safety when registering and resolving services.
//
// Example:
//
//	var DatabaseKey = NewServiceKey[*Database]("database")
//	var UserServiceKey = NewServiceKey[*UserService]("userService")
func NewServiceKey[T any](id string) ServiceKey[T] {
	return ServiceKey[T]{id: id}
}

// TypeKey creates a service key named after T itself.
func TypeKey[T any]() ServiceKey[T] {
	return ServiceKey[T]{id: TypeName[T]()}
}

// ID returns the identifier of the service key.
func (k ServiceKey[T]) ID() string {
	return k.id
}

// String implements fmt.Stringer.
func (k ServiceKey[T]) String() string {
	return k.id
}

// SetFactoryWithKey registers a typed factory using a service key.
//
// Example:
//
//	var DatabaseKey = NewServiceKey[*Database]("database")
//	SetFactoryWithKey(d, DatabaseKey, func(d Depot, _ Options) (*Database, error) {
//	    return &Database{}, nil
//	})
func SetFactoryWithKey[T any](d Depot, key ServiceKey[T], factory func(d Depot, options Options) (T, error)) error {
	return SetTypedFactory(d, key.id, factory)
}

// AliasKey points the alias key at the target key. Both keys share T, so an
// interface key can only alias an implementation key of the same static type.
func AliasKey[T any](d Depot, alias, target ServiceKey[T]) error {
	return d.SetAlias(alias.id, target.id)
}

// GetWithKey resolves the shared instance using a typed service key.
//
// Example:
//
//	db, err := GetWithKey(d, DatabaseKey)
func GetWithKey[T any](d Depot, key ServiceKey[T]) (T, error) {
	return Get[T](d, key.id)
}

// BuildWithKey builds a new instance using a typed service key.
func BuildWithKey[T any](d Depot, key ServiceKey[T], options Options) (T, error) {
	return Build[T](d, key.id, options)
}

// MustWithKey resolves a service using a typed service key and panics on error.
//
// Example:
//
//	db := MustWithKey(d, DatabaseKey)
func MustWithKey[T any](d Depot, key ServiceKey[T]) T {
	result, err := GetWithKey(d, key)
	if err != nil {
		panic(err)
	}
	return result
}

// HasKey checks if a service is configured using a typed service key.
func HasKey[T any](d Depot, key ServiceKey[T]) bool {
	return d.Has(key.id)
}

// InspectKey returns diagnostic information about a service using a typed service key.
func InspectKey[T any](d Depot, key ServiceKey[T]) ServiceInfo {
	return d.Inspect(key.id)
}
