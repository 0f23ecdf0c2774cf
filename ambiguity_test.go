package semparse

import (
	"testing"

	"github.com/textgraph/semparse/internal/confidence"
	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/extract"
	"github.com/textgraph/semparse/internal/semgraph"
	"github.com/textgraph/semparse/internal/token"
)

// drinkState builds "The rock sees water." with rock(2) as the nsubj of
// sees(3) — an animacy violation for the perception verb class, used to
// exercise selectional-mismatch detection.
func drinkState() *sentenceState {
	tokens := []token.Token{
		{Text: "The", Start: 0, End: 3},
		{Text: "rock", Start: 4, End: 8},
		{Text: "sees", Start: 9, End: 13},
		{Text: "water", Start: 14, End: 19},
		{Text: ".", Start: 19, End: 20},
	}
	tags := []string{"DT", "NN", "VBZ", "NN", "."}
	lemmas := []string{"the", "rock", "see", "water", "."}

	arcs := []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "det"},
		{Dependent: 2, Head: 3, Label: "nsubj"},
		{Dependent: 3, Head: 0, Label: "root"},
		{Dependent: 4, Head: 3, Label: "obj"},
		{Dependent: 5, Head: 3, Label: "punct"},
	}
	tree := deptree.New(arcs, len(tokens))
	// A table calibrating every zero-margin arc to 0.95 keeps every arc
	// in the High bucket by default, so only the arc this test
	// explicitly overrides below carries an Ambiguity record.
	table := confidence.NewTable([]confidence.Bin{{Margin: 0, Probability: 0.95}})
	ann := confidence.Annotate(table, tree.Arcs())

	return &sentenceState{
		tokens:          tokens,
		tags:            tags,
		lemmas:          lemmas,
		tree:            tree,
		ann:             ann,
		entityIRIByHead: map[int]string{2: "inst:RealWorldEntity_rock_aaaaaaaaaaaa", 4: "inst:RealWorldEntity_water_bbbbbbbbbbbb"},
		actIRIByVerb:    make(map[int]string),
		actualityByVerb: make(map[int]string),
		structuralVerbs: make(map[int]bool),
	}
}

func TestSelectionalAmbiguitySignalsFlagsAnimacyMismatch(t *testing.T) {
	st := drinkState()
	act := extract.Act{VerbToken: 3, Lemma: "see", Surface: "sees", SpanStart: 9, SpanEnd: 13, ActualityStatus: extract.ActualityActual}
	graph := semgraph.NewGraph()
	opts := DefaultBuildOptions()

	buildActNodes(graph, st, []extract.Act{act}, opts)
	signals := selectionalAmbiguitySignals(st, []extract.Act{act}, st.tree, graph, opts)

	if len(signals) == 0 {
		t.Fatal("expected at least one selectional_mismatch signal for an inanimate perceiver")
	}
	for _, s := range signals {
		if s.Kind != "selectional_mismatch" {
			t.Errorf("expected kind selectional_mismatch, got %q", s.Kind)
		}
	}

	n, ok := graph.Get(st.actIRIByVerb[3])
	if !ok {
		t.Fatal("expected act node in graph")
	}
	a := n.(semgraph.Act)
	if a.Ambiguity == nil || !a.Ambiguity.HasAmbiguity || !a.Ambiguity.SelectionalMismatch {
		t.Error("expected the act node's Ambiguity flags to be set")
	}
}

func TestSelectionalAmbiguitySignalsSilentWithoutVerbClass(t *testing.T) {
	st, act := mustSendState()
	act.Lemma = "frobnicate" // not in the selectional lexicon
	graph := semgraph.NewGraph()
	opts := DefaultBuildOptions()

	buildActNodes(graph, st, []extract.Act{act}, opts)
	signals := selectionalAmbiguitySignals(st, []extract.Act{act}, st.tree, graph, opts)

	if len(signals) != 0 {
		t.Errorf("expected no signals for a verb outside the selectional lexicon, got %v", signals)
	}
}

func TestLowConfidenceSignalsSurfacesAmbiguousArcs(t *testing.T) {
	st := drinkState()
	st.ann[1].Ambiguity = &confidence.AmbiguitySignal{
		Dependent:             2,
		Head:                  3,
		Label:                 "nsubj",
		CalibratedProbability: 0.2,
	}

	signals := lowConfidenceSignals(st)
	if len(signals) != 1 {
		t.Fatalf("expected exactly one low_confidence signal, got %d", len(signals))
	}
	if signals[0].Kind != "low_confidence" {
		t.Errorf("expected kind low_confidence, got %q", signals[0].Kind)
	}
	if signals[0].NodeIRI != "rock@4" {
		t.Errorf("expected pseudo node ref %q, got %q", "rock@4", signals[0].NodeIRI)
	}
}

func TestMergeAmbiguityAccumulatesNotesAcrossCalls(t *testing.T) {
	flags := mergeAmbiguity(nil, []string{"first"}, false)
	flags = mergeAmbiguity(flags, []string{"second"}, true)

	if !flags.HasAmbiguity || !flags.SelectionalMismatch || !flags.Metonymy {
		t.Errorf("expected all flags set, got %+v", flags)
	}
	if len(flags.Notes) != 2 || flags.Notes[0] != "first" || flags.Notes[1] != "second" {
		t.Errorf("expected accumulated notes [first second], got %v", flags.Notes)
	}
}

func TestFlagAmbiguityIsNoOpForUnknownIRI(t *testing.T) {
	graph := semgraph.NewGraph()
	flagAmbiguity(graph, "inst:Act_missing_000000000000", []string{"x"}, false)
	if graph.Len() != 0 {
		t.Errorf("expected flagAmbiguity to add nothing for an unknown IRI, graph has %d nodes", graph.Len())
	}
}
