package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	contactKey    = NewServiceKey[*contact]("contact")
	simCardKey    = TypeKey[simCardInterface]()
	simCardImpKey = NewServiceKey[simCardInterface]("sim.impl")
)

func TestServiceKey(t *testing.T) {
	assert.Equal(t, "contact", contactKey.ID())
	assert.Equal(t, "contact", contactKey.String())
	assert.Equal(t, simCardIfaceID, simCardKey.ID())
}

func TestSetFactoryWithKey(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	err = SetFactoryWithKey(d, contactKey, func(_ Depot, _ Options) (*contact, error) {
		return &contact{name: "keyed"}, nil
	})
	require.NoError(t, err)

	assert.True(t, HasKey(d, contactKey))

	got, err := GetWithKey(d, contactKey)
	require.NoError(t, err)
	assert.Equal(t, "keyed", got.name)

	assert.Same(t, got, MustWithKey(d, contactKey))

	built, err := BuildWithKey(d, contactKey, nil)
	require.NoError(t, err)
	assert.NotSame(t, got, built)
}

func TestAliasKey(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	err = SetFactoryWithKey(d, simCardImpKey, func(_ Depot, _ Options) (simCardInterface, error) {
		return &simCard{}, nil
	})
	require.NoError(t, err)

	require.NoError(t, AliasKey(d, simCardKey, simCardImpKey))

	sim, err := GetWithKey(d, simCardKey)
	require.NoError(t, err)
	assert.Equal(t, "acme", sim.Carrier())

	info := InspectKey(d, simCardKey)
	assert.Equal(t, KindAlias, info.Kind)
	assert.Equal(t, "sim.impl", info.Terminal)
}

func TestMustWithKey_Panics(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	assert.False(t, HasKey(d, contactKey))
	assert.Panics(t, func() { MustWithKey(d, contactKey) })
}
