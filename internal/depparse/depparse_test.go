package depparse

import (
	"testing"

	"github.com/textgraph/semparse/internal/featstore"
	"github.com/textgraph/semparse/internal/token"
)

func simpleModel(labels []string, weights map[string]map[string]float64) *Model {
	return &Model{Store: featstore.New(0, weights), Labels: labels}
}

func TestParseEmptyTokensReturnsNoArcs(t *testing.T) {
	m := simpleModel([]string{"nsubj", "root"}, nil)
	arcs := Parse(m, nil, nil)
	if arcs != nil {
		t.Errorf("expected nil arcs for empty input, got %v", arcs)
	}
}

func TestParseAssignsOneArcPerToken(t *testing.T) {
	m := simpleModel([]string{"nsubj", "root", "obj"}, map[string]map[string]float64{
		"bias": {"SHIFT": 0},
	})
	tokens := []token.Token{{Text: "Dogs"}, {Text: "bark"}}
	tags := []string{"NNS", "VBP"}
	arcs := Parse(m, tokens, tags)

	if len(arcs) != 2 {
		t.Fatalf("expected 2 arcs, got %d", len(arcs))
	}
	for _, a := range arcs {
		if a.Label == "" {
			t.Errorf("arc for token %d has empty label", a.Dependent)
		}
	}
}

func TestParseEndSweepAttachesHeadlessToRoot(t *testing.T) {
	// With an empty weight table every transition scores 0; regardless
	// of which path the tie-broken greedy parser takes, every token must
	// end up with exactly one arc and a head in [0, n].
	m := simpleModel([]string{"dep"}, nil)
	tokens := []token.Token{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	tags := []string{"X", "X", "X"}
	arcs := Parse(m, tokens, tags)

	seen := map[int]bool{}
	for _, a := range arcs {
		seen[a.Dependent] = true
		if a.Head < 0 || a.Head > 3 {
			t.Errorf("arc head %d out of range for token %d", a.Head, a.Dependent)
		}
	}
	for i := 1; i <= 3; i++ {
		if !seen[i] {
			t.Errorf("token %d received no arc", i)
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	m := simpleModel([]string{"nsubj", "root", "obj", "det"}, map[string]map[string]float64{
		"s0w=Dogs": {"RIGHT-ARC:nsubj": 2},
	})
	tokens := []token.Token{{Text: "Dogs"}, {Text: "bark"}}
	tags := []string{"NNS", "VBP"}

	first := Parse(m, tokens, tags)
	second := Parse(m, tokens, tags)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic arc counts: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("arc %d differs across runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLegalTransitionsRespectPreconditions(t *testing.T) {
	c := newConfig(2)
	m := simpleModel([]string{"nsubj"}, nil)
	cands := legalTransitions(c, m)
	// Stack = [ROOT], buffer = [1,2]: SHIFT legal, REDUCE illegal (top is
	// ROOT), LEFT-ARC illegal (top is ROOT), RIGHT-ARC legal.
	hasShift, hasReduce, hasLeft := false, false, false
	for _, cand := range cands {
		switch cand.kind {
		case shift:
			hasShift = true
		case reduce:
			hasReduce = true
		case leftArc:
			hasLeft = true
		}
	}
	if !hasShift {
		t.Errorf("expected SHIFT to be legal with ROOT on stack and non-empty buffer")
	}
	if hasReduce {
		t.Errorf("REDUCE should be illegal with ROOT on stack top")
	}
	if hasLeft {
		t.Errorf("LEFT-ARC should be illegal with ROOT on stack top")
	}
}
