package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryDepot(t *testing.T) Depot {
	t.Helper()

	d, err := newFixtureDepot(Config{
		Services: map[string]any{"settings": map[string]any{}},
		Factories: map[string]FactoryRef{
			simCardID: Class(simCardFactoryClass),
		},
		Invokables: map[string]string{contactID: ""},
		Aliases: map[string]string{
			"sim":          simCardID,
			simCardIfaceID: "sim",
			"owner":        contactID,
		},
	})
	require.NoError(t, err)

	return d
}

func TestIdentifiers(t *testing.T) {
	d := newQueryDepot(t)

	ids := d.Identifiers()
	assert.IsNonDecreasing(t, ids)
	assert.ElementsMatch(t, []string{
		"settings", simCardID, contactID, "sim", simCardIfaceID, "owner",
	}, ids)
}

func TestInspect(t *testing.T) {
	d := newQueryDepot(t)

	info := d.Inspect(simCardIfaceID)
	assert.Equal(t, KindAlias, info.Kind)
	assert.Equal(t, simCardID, info.Terminal)
	assert.Equal(t, []string{simCardIfaceID, "sim", simCardID}, info.Chain)
	assert.Equal(t, simCardFactoryClass, info.Factory)
	assert.False(t, info.Instantiated)

	_, err := d.Get(simCardIfaceID)
	require.NoError(t, err)

	info = d.Inspect(simCardIfaceID)
	assert.True(t, info.Instantiated)
	assert.Equal(t, "*depot.simCard", info.Type)
	assert.True(t, info.FactoryLoaded)

	info = d.Inspect("settings")
	assert.Equal(t, KindService, info.Kind)
	assert.True(t, info.Instantiated)
	assert.Empty(t, info.Factory)

	info = d.Inspect(contactID)
	assert.Equal(t, KindFactory, info.Kind)
	assert.Equal(t, InvokableFactoryClass, info.Factory)
	assert.Equal(t, []string{contactID}, info.Chain)
}

func TestInspect_Unknown(t *testing.T) {
	d := newQueryDepot(t)

	info := d.Inspect("nonexistent")
	assert.Equal(t, KindUnknown, info.Kind)
	assert.Equal(t, "nonexistent", info.Terminal)
	assert.False(t, info.Instantiated)
}

func TestQuery_ByKind(t *testing.T) {
	d := newQueryDepot(t)

	assert.Equal(t, []string{simCardIfaceID, "owner", "sim"}, namesOf(FindByKind(d, KindAlias)))
	assert.ElementsMatch(t, []string{simCardID, contactID}, QueryNames(d, ServiceQuery{Kind: KindFactory}))
	assert.Equal(t, []string{"settings"}, QueryNames(d, ServiceQuery{Kind: KindService}))
}

func TestQuery_ByTerminal(t *testing.T) {
	d := newQueryDepot(t)

	aliases := FindAliases(d, simCardID)
	assert.ElementsMatch(t, []string{"sim", simCardIfaceID}, namesOf(aliases))

	assert.Empty(t, FindAliases(d, "nothing"))
}

func TestQuery_Instantiated(t *testing.T) {
	d := newQueryDepot(t)

	assert.Equal(t, []string{"settings"}, namesOf(FindInstantiated(d)))

	_, err := d.Get("owner")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"settings", "owner", contactID}, namesOf(FindInstantiated(d)))

	notInstantiated := false
	pending := QueryNames(d, ServiceQuery{Instantiated: &notInstantiated})
	assert.ElementsMatch(t, []string{simCardID, "sim", simCardIfaceID}, pending)
}

func namesOf(infos []ServiceInfo) []string {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.ID
	}
	return names
}
