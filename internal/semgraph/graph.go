package semgraph

import (
	"encoding/json"
)

// Graph is an insertion-ordered set of nodes with stable IRIs (spec §5
// "Node-list order in the output is stable"). It is built once per
// build() call and is immutable once returned (spec §3 "Lifecycle").
type Graph struct {
	order []string
	nodes map[string]Node
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]Node)}
}

// Add inserts n, appending it to the stable order if its IRI hasn't
// been seen before; if the IRI already exists, the new node replaces it
// (last-writer-wins for the whole node, spec §5 — callers that need
// field-wise merging, such as appending to `realized_in`, read the
// existing node first and construct the merged replacement).
func (g *Graph) Add(n Node) {
	id := n.ID()
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = n
}

// Get returns the node with the given IRI, if present.
func (g *Graph) Get(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in stable insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Remove deletes a node by IRI (used by shadow suppression, spec
// §4.10).
func (g *Graph) Remove(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of nodes currently in the graph.
func (g *Graph) Len() int { return len(g.order) }

// Clone returns a deep-enough copy safe for a caller to mutate without
// affecting the original (node values themselves are immutable once
// constructed, so Clone only needs to copy the index structures).
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		order: append([]string(nil), g.order...),
		nodes: make(map[string]Node, len(g.nodes)),
	}
	for k, v := range g.nodes {
		clone.nodes[k] = v
	}
	return clone
}

// MarshalJSON renders the graph as an ordered array of nodes, each with
// `@id`, `@type`, and its own flattened fields (spec §6 "Persisted/
// emitted state").
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		m := map[string]any{
			"@id":   n.ID(),
			"@type": n.Types(),
		}
		for k, v := range n.Fields() {
			m[k] = v
		}
		out = append(out, m)
	}
	return json.Marshal(out)
}
