// Package depot provides a dependency-injection registry built around an
// alias-aware resolution engine.
//
// Services are registered directly, through factories that build them on
// demand, or through aliases that redirect one identifier to another. Aliases
// are flattened eagerly on every merge so retrieval is a single map lookup.
//
//	d, err := depot.New(depot.Config{
//	    Factories: map[string]depot.FactoryRef{
//	        "db": depot.Func(func(c depot.Depot, id string, _ depot.Options) (any, error) {
//	            return sql.Open("postgres", dsn)
//	        }),
//	    },
//	    Aliases: map[string]string{"database": "db"},
//	})
//
//	db, err := depot.Get[*sql.DB](d, "database") // shared with "db"
package depot

// Depot is a dependency-injection registry.
//
// Get returns shared instances, cached per identifier. Build always invokes
// the factory and never touches the cache. Merge adds configuration; later
// merges win on conflicting identifiers.
type Depot interface {
	// Merge applies another configuration payload and returns the same Depot.
	// A cyclic alias aborts the merge; sections processed before the alias
	// step stay applied.
	Merge(cfg Config) (Depot, error)

	// Get returns the shared instance for id, creating it on first use.
	Get(id string) (any, error)

	// Build creates a new instance for id on every call.
	// options is passed through to the factory untouched.
	Build(id string, options Options) (any, error)

	// Has reports whether id resolves to a cached service or a configured factory.
	// It never instantiates anything.
	Has(id string) bool

	// SetService registers a pre-built instance.
	SetService(id string, service any) error

	// SetFactory registers a factory for id.
	SetFactory(id string, ref FactoryRef) error

	// SetAlias points alias at target.
	SetAlias(alias, target string) error

	// SetInvokable registers a type constructed by the built-in invokable factory.
	// An empty class means the identifier names the type itself.
	SetInvokable(id, class string) error

	// Use adds middleware to the container.
	Use(mw Middleware)

	// Types returns the type registry used to resolve factory classes and invokables.
	Types() *Types

	// Identifiers returns every configured identifier in sorted order.
	Identifiers() []string

	// Inspect returns diagnostic information about an identifier.
	Inspect(id string) ServiceInfo
}

// Config is a configuration payload accepted by New and Merge.
// A nil section is absent; an empty non-nil section is present but adds nothing.
type Config struct {
	// Services maps identifiers to already-built instances.
	Services map[string]any

	// Factories maps identifiers to factories, resolved or lazily loaded.
	Factories map[string]FactoryRef

	// Aliases maps an identifier to another identifier, possibly another alias.
	Aliases map[string]string

	// Invokables maps an identifier to the name of a type registered in Types.
	// An empty value means the identifier is the type name.
	Invokables map[string]string
}

// Options is an opaque parameter bag handed to factories by Build.
type Options map[string]any

// New creates a container and merges cfg into it.
func New(cfg Config, opts ...Option) (Depot, error) {
	c := newContainerImpl(opts...)

	if _, err := c.Merge(cfg); err != nil {
		return nil, err
	}

	return c, nil
}

// MustNew is like New but panics on error - use only during startup.
func MustNew(cfg Config, opts ...Option) Depot {
	d, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}

	return d
}
