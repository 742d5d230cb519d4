package depot

import (
	"errors"
	"sync/atomic"
)

// Fixture types used across the package tests.

type contact struct {
	name string
}

type flashMemory struct {
	options Options
}

type simCardInterface interface {
	Carrier() string
}

type simCard struct{}

func (*simCard) Carrier() string { return "acme" }

type phone struct {
	sim *simCard
}

// simCardFactory is a factory class with a value receiver.
type simCardFactory struct{}

func (simCardFactory) Create(_ Depot, _ string, _ Options) (any, error) {
	return &simCard{}, nil
}

// phoneFactory pulls its SIM card from the container.
type phoneFactory struct{}

func (*phoneFactory) Create(c Depot, _ string, _ Options) (any, error) {
	sim, err := Get[*simCard](c, TypeName[*simCard]())
	if err != nil {
		return nil, err
	}
	return &phone{sim: sim}, nil
}

// failingFactory always returns a plain error.
type failingFactory struct{}

func (failingFactory) Create(_ Depot, _ string, _ Options) (any, error) {
	return nil, errors.New("factory failed")
}

// codedError carries an integer code.
type codedError struct {
	code int
}

func (e *codedError) Error() string { return "coded failure" }
func (e *codedError) Code() int     { return e.code }

// stringCodedError carries a string code.
type stringCodedError struct {
	code string
}

func (e *stringCodedError) Error() string { return "there is an error" }
func (e *stringCodedError) Code() string  { return e.code }

// countingFactory counts its invocations.
type countingFactory struct {
	calls atomic.Int32
	build func() any
}

func (f *countingFactory) Create(_ Depot, _ string, _ Options) (any, error) {
	f.calls.Add(1)
	if f.build != nil {
		return f.build(), nil
	}
	return &contact{}, nil
}

// newFixtureTypes returns a registry with every fixture type registered.
func newFixtureTypes() *Types {
	types := NewTypes()

	_ = RegisterType(types, func(_ Options) (*contact, error) {
		return &contact{}, nil
	})
	_ = RegisterType(types, func(options Options) (*flashMemory, error) {
		return &flashMemory{options: options}, nil
	})
	_ = RegisterType(types, func(_ Options) (*simCard, error) {
		return &simCard{}, nil
	})
	_ = RegisterFactoryType[simCardFactory](types)
	_ = RegisterFactoryType[*phoneFactory](types)
	_ = RegisterFactoryType[failingFactory](types)

	return types
}

// newFixtureDepot creates a container backed by the fixture types.
func newFixtureDepot(cfg Config, opts ...Option) (Depot, error) {
	return New(cfg, append([]Option{WithTypes(newFixtureTypes())}, opts...)...)
}

var (
	contactID      = TypeName[*contact]()
	flashMemoryID  = TypeName[*flashMemory]()
	simCardID      = TypeName[*simCard]()
	simCardIfaceID = TypeName[simCardInterface]()
	phoneID        = TypeName[*phone]()

	simCardFactoryClass = TypeName[simCardFactory]()
	phoneFactoryClass   = TypeName[*phoneFactory]()
	failingFactoryClass = TypeName[failingFactory]()
)
