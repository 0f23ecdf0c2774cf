package gquery

import (
	"testing"

	"github.com/textgraph/semparse/internal/semgraph"
)

func sampleGraph() *semgraph.Graph {
	g := semgraph.NewGraph()
	g.Add(semgraph.RealWorldEntity{
		Base:        semgraph.Base{IRIValue: "inst:Person_doctor_a1", TypeValues: []string{"Person"}},
		DenotedType: "Person",
		Aliases:     []string{"Dr. Smith"},
	})
	g.Add(semgraph.RealWorldEntity{
		Base:        semgraph.Base{IRIValue: "inst:Artifact_gun_b2", TypeValues: []string{"Artifact"}},
		DenotedType: "Artifact",
	})
	g.Add(semgraph.Act{
		Base:            semgraph.Base{IRIValue: "inst:Act_treat_c3", TypeValues: []string{"IntentionalAct"}},
		Lemma:           "treat",
		Modality:        "obligation",
		ActualityStatus: "Prescribed",
	})
	return g
}

func TestFindByTypeOnly(t *testing.T) {
	r, err := Query(sampleGraph(), `FIND Person`)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	ns, ok := r.(NodeSetResult)
	if !ok || len(ns.Nodes) != 1 {
		t.Fatalf("expected 1 Person node, got %+v", r)
	}
	if ns.Nodes[0].ID() != "inst:Person_doctor_a1" {
		t.Errorf("unexpected node: %s", ns.Nodes[0].ID())
	}
}

func TestFindWithEqualityCondition(t *testing.T) {
	r, err := Query(sampleGraph(), `FIND Act WHERE lemma = "treat"`)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	ns := r.(NodeSetResult)
	if len(ns.Nodes) != 1 {
		t.Fatalf("expected 1 match, got %d", len(ns.Nodes))
	}
}

func TestFindWithNonMatchingEqualityCondition(t *testing.T) {
	r, err := Query(sampleGraph(), `FIND Act WHERE lemma = "give"`)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	ns := r.(NodeSetResult)
	if len(ns.Nodes) != 0 {
		t.Fatalf("expected 0 matches, got %d", len(ns.Nodes))
	}
}

func TestFindWithContainsOnStringSlice(t *testing.T) {
	r, err := Query(sampleGraph(), `FIND Person WHERE aliases CONTAINS "Dr. Smith"`)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	ns := r.(NodeSetResult)
	if len(ns.Nodes) != 1 {
		t.Fatalf("expected 1 match, got %d", len(ns.Nodes))
	}
}

func TestFindWithMultipleAndedConditions(t *testing.T) {
	r, err := Query(sampleGraph(), `FIND Act WHERE modality = obligation AND actualityStatus = Prescribed`)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	ns := r.(NodeSetResult)
	if len(ns.Nodes) != 1 {
		t.Fatalf("expected 1 match, got %d", len(ns.Nodes))
	}
}

func TestFindByIDField(t *testing.T) {
	r, err := Query(sampleGraph(), `FIND Artifact WHERE id = "inst:Artifact_gun_b2"`)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	ns := r.(NodeSetResult)
	if len(ns.Nodes) != 1 {
		t.Fatalf("expected 1 match, got %d", len(ns.Nodes))
	}
}

func TestFindUnknownTypeReturnsNoMatches(t *testing.T) {
	r, err := Query(sampleGraph(), `FIND Spaceship`)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	ns := r.(NodeSetResult)
	if len(ns.Nodes) != 0 {
		t.Errorf("expected 0 matches for unknown type, got %d", len(ns.Nodes))
	}
}

func TestQueryRejectsMalformedSyntax(t *testing.T) {
	_, err := Query(sampleGraph(), `FIND WHERE`)
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if _, ok := err.(SyntaxError); !ok {
		t.Errorf("expected SyntaxError, got %T", err)
	}
}
