package semgraph

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGraphNodesAreDeterministicAcrossIdenticalBuilds(t *testing.T) {
	build := func() []Node {
		g := NewGraph()
		g.Add(RealWorldEntity{Base: Base{IRIValue: "inst:A", TypeValues: []string{"Person"}}, DenotedType: "Person"})
		g.Add(Role{Base: Base{IRIValue: "inst:R1", TypeValues: []string{"AgentRole"}}, RoleType: "AgentRole", Bearer: "inst:A"})
		return g.Nodes()
	}
	a, b := build(), build()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("identical builds produced different node sets (-first +second):\n%s", diff)
	}
}

func TestGraphAddAndOrderIsStable(t *testing.T) {
	g := NewGraph()
	g.Add(RealWorldEntity{Base: Base{IRIValue: "inst:A", TypeValues: []string{"Person"}}})
	g.Add(RealWorldEntity{Base: Base{IRIValue: "inst:B", TypeValues: []string{"Artifact"}}})
	nodes := g.Nodes()
	if len(nodes) != 2 || nodes[0].ID() != "inst:A" || nodes[1].ID() != "inst:B" {
		t.Errorf("unexpected node order: %+v", nodes)
	}
}

func TestGraphAddReplacesOnDuplicateIRI(t *testing.T) {
	g := NewGraph()
	g.Add(RealWorldEntity{Base: Base{IRIValue: "inst:A"}, DenotedType: "Person"})
	g.Add(RealWorldEntity{Base: Base{IRIValue: "inst:A"}, DenotedType: "Artifact"})
	if g.Len() != 1 {
		t.Fatalf("expected 1 node after duplicate IRI add, got %d", g.Len())
	}
	n, _ := g.Get("inst:A")
	if n.(RealWorldEntity).DenotedType != "Artifact" {
		t.Errorf("expected last-writer-wins replacement")
	}
}

func TestGraphRemove(t *testing.T) {
	g := NewGraph()
	g.Add(RealWorldEntity{Base: Base{IRIValue: "inst:A"}})
	g.Remove("inst:A")
	if g.Len() != 0 {
		t.Errorf("expected 0 nodes after remove, got %d", g.Len())
	}
	if _, ok := g.Get("inst:A"); ok {
		t.Errorf("expected node to be gone after remove")
	}
}

func TestGraphMarshalJSONIncludesIDAndType(t *testing.T) {
	g := NewGraph()
	g.Add(RealWorldEntity{
		Base:        Base{IRIValue: "inst:Person_doctor_abc123456789", TypeValues: []string{"Person"}},
		DenotedType: "Person",
	})
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 serialized node, got %d", len(out))
	}
	if out[0]["@id"] != "inst:Person_doctor_abc123456789" {
		t.Errorf("@id = %v", out[0]["@id"])
	}
	types, ok := out[0]["@type"].([]any)
	if !ok || len(types) != 1 || types[0] != "Person" {
		t.Errorf("@type = %v", out[0]["@type"])
	}
}
