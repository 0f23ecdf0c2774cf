package depparse

import (
	"testing"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/token"
)

// "She gave the committee award." -> committee is a compound child of
// "award" (the obj), preceding it, tagged NN, and a recipient-capable
// noun; "the" is a det of "award" that precedes the compound.
//
// Tokens: 1 She 2 gave 3 the 4 committee 5 award 6 .
func ditransitiveArcs() ([]token.Token, []string, []string, []deptree.Arc) {
	tokens := []token.Token{
		{Text: "She"}, {Text: "gave"}, {Text: "the"}, {Text: "committee"}, {Text: "award"}, {Text: "."},
	}
	tags := []string{"PRP", "VBD", "DT", "NN", "NN", "."}
	lemmas := []string{"she", "give", "the", "committee", "award", "."}
	arcs := []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "nsubj"},
		{Dependent: 2, Head: 0, Label: "root"},
		{Dependent: 3, Head: 5, Label: "det"},
		{Dependent: 4, Head: 5, Label: "compound"},
		{Dependent: 5, Head: 2, Label: "obj"},
		{Dependent: 6, Head: 2, Label: "punct"},
	}
	return tokens, tags, lemmas, arcs
}

func TestCorrectArcsRewritesCompoundToIobj(t *testing.T) {
	tokens, tags, lemmas, arcs := ditransitiveArcs()
	out := CorrectArcs(arcs, tokens, tags, lemmas)

	var compoundArc deptree.Arc
	for _, a := range out {
		if a.Dependent == 4 {
			compoundArc = a
		}
	}
	if compoundArc.Label != "iobj" {
		t.Errorf("compound arc label = %q, want iobj", compoundArc.Label)
	}
	if compoundArc.Head != 2 {
		t.Errorf("compound arc head = %d, want 2 (the verb)", compoundArc.Head)
	}
}

func TestCorrectArcsReparentsPrecedingDet(t *testing.T) {
	tokens, tags, lemmas, arcs := ditransitiveArcs()
	out := CorrectArcs(arcs, tokens, tags, lemmas)

	var detArc deptree.Arc
	for _, a := range out {
		if a.Dependent == 3 {
			detArc = a
		}
	}
	if detArc.Head != 4 {
		t.Errorf("det arc head = %d, want 4 (reparented to the compound)", detArc.Head)
	}
}

func TestCorrectArcsLeavesNonDitransitiveVerbsAlone(t *testing.T) {
	tokens := []token.Token{{Text: "She"}, {Text: "saw"}, {Text: "the"}, {Text: "committee"}, {Text: "chair"}}
	tags := []string{"PRP", "VBD", "DT", "NN", "NN"}
	lemmas := []string{"she", "see", "the", "committee", "chair"}
	arcs := []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "nsubj"},
		{Dependent: 2, Head: 0, Label: "root"},
		{Dependent: 3, Head: 5, Label: "det"},
		{Dependent: 4, Head: 5, Label: "compound"},
		{Dependent: 5, Head: 2, Label: "obj"},
	}
	out := CorrectArcs(arcs, tokens, tags, lemmas)
	for _, a := range out {
		if a.Dependent == 4 && a.Label != "compound" {
			t.Errorf("expected compound label untouched for non-ditransitive verb, got %q", a.Label)
		}
	}
}

func TestCorrectArcsDoesNotMutateInput(t *testing.T) {
	tokens, tags, lemmas, arcs := ditransitiveArcs()
	before := append([]deptree.Arc(nil), arcs...)
	CorrectArcs(arcs, tokens, tags, lemmas)
	for i := range arcs {
		if arcs[i] != before[i] {
			t.Errorf("CorrectArcs mutated its input slice at index %d", i)
		}
	}
}
