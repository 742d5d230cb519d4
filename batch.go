package depot

// MergeAll merges several configuration payloads in order.
// Later payloads win on conflicting identifiers. It stops at the first
// failing payload; payloads merged before it stay applied.
//
// Example:
//
//	err := depot.MergeAll(d,
//	    storage.Config(),
//	    cache.Config(),
//	    app.Config(),
//	)
func MergeAll(d Depot, configs ...Config) error {
	for _, cfg := range configs {
		if _, err := d.Merge(cfg); err != nil {
			return err
		}
	}
	return nil
}

// Combine folds several payloads into one, section by section, with later
// payloads winning. Invokables are expanded into aliases and factories per
// payload first, so a later payload can override what an earlier invokable
// declared. Sections absent from every payload stay nil.
func Combine(configs ...Config) Config {
	var out Config

	for _, cfg := range configs {
		aliases, factories := cfg.Aliases, cfg.Factories
		if len(cfg.Invokables) > 0 {
			invAliases, invFactories := expandInvokables(cfg.Invokables)
			if len(invAliases) > 0 {
				aliases = union(aliases, invAliases)
			}
			factories = union(factories, invFactories)
		}

		if cfg.Services != nil {
			out.Services = union(out.Services, cfg.Services)
		}
		if factories != nil {
			out.Factories = union(out.Factories, factories)
		}
		if aliases != nil {
			out.Aliases = union(out.Aliases, aliases)
		}
	}

	return out
}

// TypedRegistration holds a typed factory to be registered in a batch.
type TypedRegistration[T any] struct {
	ID      string
	Factory func(d Depot, options Options) (T, error)
}

// Typed creates a TypedRegistration for batch registration.
func Typed[T any](id string, factory func(d Depot, options Options) (T, error)) TypedRegistration[T] {
	return TypedRegistration[T]{
		ID:      id,
		Factory: factory,
	}
}

// SetTypedFactories registers multiple typed factories in a single call.
// Returns the first registration error.
//
// Example:
//
//	err := depot.SetTypedFactories(d,
//	    depot.Typed("db.primary", NewPrimary),
//	    depot.Typed("db.replica", NewReplica),
//	)
func SetTypedFactories[T any](d Depot, registrations ...TypedRegistration[T]) error {
	for _, reg := range registrations {
		if err := SetTypedFactory(d, reg.ID, reg.Factory); err != nil {
			return err
		}
	}
	return nil
}

// KeyedRegistration holds a factory bound to a service key.
type KeyedRegistration[T any] struct {
	Key     ServiceKey[T]
	Factory func(d Depot, options Options) (T, error)
}

// Keyed creates a KeyedRegistration for batch registration with service keys.
func Keyed[T any](key ServiceKey[T], factory func(d Depot, options Options) (T, error)) KeyedRegistration[T] {
	return KeyedRegistration[T]{
		Key:     key,
		Factory: factory,
	}
}

// SetKeyedFactories registers multiple keyed factories in a single call.
//
// Example:
//
//	var (
//	    PrimaryKey = depot.NewServiceKey[*sql.DB]("db.primary")
//	    ReplicaKey = depot.NewServiceKey[*sql.DB]("db.replica")
//	)
//
//	err := depot.SetKeyedFactories(d,
//	    depot.Keyed(PrimaryKey, NewPrimary),
//	    depot.Keyed(ReplicaKey, NewReplica),
//	)
func SetKeyedFactories[T any](d Depot, registrations ...KeyedRegistration[T]) error {
	for _, reg := range registrations {
		if err := SetFactoryWithKey(d, reg.Key, reg.Factory); err != nil {
			return err
		}
	}
	return nil
}
