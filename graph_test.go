package depot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraphDepot(t *testing.T) Depot {
	t.Helper()

	d, err := New(Config{
		Services: map[string]any{"cfg": 1},
		Factories: map[string]FactoryRef{
			"db": Func(benchmarkFactory),
		},
		Aliases: map[string]string{
			"database": "db",
			"storage":  "database",
			"settings": "cfg",
			"orphan":   "missing",
		},
	})
	require.NoError(t, err)

	return d
}

func TestAliasGraph_Edges(t *testing.T) {
	g := NewAliasGraph(newGraphDepot(t))

	target, ok := g.Target("storage")
	assert.True(t, ok)
	assert.Equal(t, "database", target)

	_, ok = g.Target("db")
	assert.False(t, ok)

	assert.Equal(t, []string{"database"}, g.Dependents("db"))
	assert.Equal(t, []string{"storage"}, g.Dependents("database"))
	assert.Nil(t, g.Dependents("nope"))

	// Dangling targets still appear as nodes
	assert.True(t, g.HasNode("missing"))
	assert.Equal(t, []string{"orphan"}, g.Dependents("missing"))

	assert.Equal(t, []string{"cfg", "db", "missing"}, g.Terminals())
}

func TestAliasGraph_TopologicalSort(t *testing.T) {
	g := NewAliasGraph(newGraphDepot(t))

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, order, 7)

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	assert.Less(t, pos["db"], pos["database"])
	assert.Less(t, pos["database"], pos["storage"])
	assert.Less(t, pos["cfg"], pos["settings"])
	assert.Less(t, pos["missing"], pos["orphan"])
}

func TestAliasGraph_TopologicalSort_Cycle(t *testing.T) {
	g := &AliasGraph{nodes: make(map[string]*node)}
	g.node("a").target = "b"
	g.node("b").target = "a"
	g.order = []string{"a", "b"}

	_, err := g.TopologicalSort()
	assert.ErrorIs(t, err, ErrCyclicAliasSentinel)
}

func TestAliasGraph_WriteDOT(t *testing.T) {
	g := NewAliasGraph(newGraphDepot(t))

	var buf bytes.Buffer
	require.NoError(t, g.WriteDOT(&buf))

	out := buf.String()
	assert.Contains(t, out, "digraph depot {")
	assert.Contains(t, out, `"storage" -> "database";`)
	assert.Contains(t, out, `"db" [shape=box];`)
	assert.Contains(t, out, `"cfg" [shape=box3d];`)
	assert.Contains(t, out, `"storage" [shape=ellipse];`)
	assert.Contains(t, out, `"missing" [shape=plaintext];`)
}
