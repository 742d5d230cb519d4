package depot

import (
	"fmt"
	"io"
	"sort"
)

// AliasGraph is a read-only snapshot of a container's alias edges.
type AliasGraph struct {
	nodes map[string]*node
	order []string // sorted identifiers
}

type node struct {
	id     string
	kind   Kind
	target string   // direct alias target, empty for non-aliases
	from   []string // aliases pointing directly at id
}

// NewAliasGraph captures the alias edges of d.
func NewAliasGraph(d Depot) *AliasGraph {
	g := &AliasGraph{
		nodes: make(map[string]*node),
	}

	for _, id := range d.Identifiers() {
		info := d.Inspect(id)

		n := g.node(id)
		n.kind = info.Kind
		if info.Kind == KindAlias && len(info.Chain) > 1 {
			n.target = info.Chain[1]
		}
	}

	// Targets that are only referenced
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if target := g.nodes[id].target; target != "" {
			t := g.node(target)
			t.from = append(t.from, id)
		}
	}

	for id, n := range g.nodes {
		sort.Strings(n.from)
		g.order = append(g.order, id)
	}
	sort.Strings(g.order)

	return g
}

func (g *AliasGraph) node(id string) *node {
	n, ok := g.nodes[id]
	if !ok {
		n = &node{id: id, kind: KindUnknown}
		g.nodes[id] = n
	}
	return n
}

// HasNode checks if id appears in the graph.
func (g *AliasGraph) HasNode(id string) bool {
	_, ok := g.nodes[id]

	return ok
}

// Target returns the direct target of an alias.
func (g *AliasGraph) Target(id string) (string, bool) {
	if n, ok := g.nodes[id]; ok && n.target != "" {
		return n.target, true
	}

	return "", false
}

// Dependents returns the aliases pointing directly at id.
func (g *AliasGraph) Dependents(id string) []string {
	if n, ok := g.nodes[id]; ok {
		return n.from
	}

	return nil
}

// Terminals returns the identifiers that are not aliases, sorted.
func (g *AliasGraph) Terminals() []string {
	var out []string
	for _, id := range g.order {
		if g.nodes[id].target == "" {
			out = append(out, id)
		}
	}
	return out
}

// TopologicalSort returns identifiers with every alias after its target.
// Independent identifiers keep their sorted order.
// Returns error if an alias cycle is detected.
func (g *AliasGraph) TopologicalSort() ([]string, error) {
	// Track visited nodes
	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))

	for _, id := range g.order {
		if err := g.visit(id, visited, visiting, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal.
func (g *AliasGraph) visit(id string, visited, visiting map[string]bool, result *[]string) error {
	if visited[id] {
		return nil
	}

	if visiting[id] {
		return ErrCyclicAlias(g.edges())
	}

	n := g.nodes[id]
	if n == nil {
		return nil
	}

	visiting[id] = true

	// Visit the target first
	if n.target != "" {
		if err := g.visit(n.target, visited, visiting, result); err != nil {
			return err
		}
	}

	visiting[id] = false
	visited[id] = true
	*result = append(*result, id)

	return nil
}

// edges returns the alias edges as a map.
func (g *AliasGraph) edges() map[string]string {
	out := make(map[string]string)
	for id, n := range g.nodes {
		if n.target != "" {
			out[id] = n.target
		}
	}
	return out
}

// WriteDOT writes the graph in Graphviz DOT format.
func (g *AliasGraph) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph depot {"); err != nil {
		return err
	}

	for _, id := range g.order {
		n := g.nodes[id]
		shape := "box"
		switch n.kind {
		case KindAlias:
			shape = "ellipse"
		case KindService:
			shape = "box3d"
		case KindUnknown:
			shape = "plaintext"
		}
		if _, err := fmt.Fprintf(w, "  %q [shape=%s];\n", id, shape); err != nil {
			return err
		}
	}

	for _, id := range g.order {
		if target := g.nodes[id].target; target != "" {
			if _, err := fmt.Fprintf(w, "  %q -> %q;\n", id, target); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")

	return err
}
