package semparse

import (
	"strconv"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/extract"
	"github.com/textgraph/semparse/internal/selectional"
	"github.com/textgraph/semparse/internal/semgraph"
)

// selectionalAmbiguitySignals checks each act's subject/object against
// its verb class's selectional restrictions (spec §4.16), flagging the
// already-added Act node's Ambiguity field and returning a matching
// AmbiguitySignal for every mismatch.
func selectionalAmbiguitySignals(st *sentenceState, acts []extract.Act, tree *deptree.DepTree, graph *semgraph.Graph, opts BuildOptions) []AmbiguitySignal {
	var signals []AmbiguitySignal
	for _, a := range acts {
		vc, ok := selectional.ClassForVerb(a.Lemma)
		if !ok {
			continue
		}
		actIRI, ok := st.actIRIByVerb[a.VerbToken]
		if !ok {
			continue
		}

		var notes []string
		if s, ok := firstChild(tree, a.VerbToken, "nsubj"); ok {
			if v, ok := selectional.CheckSubject(vc, st.lemmas[s-1]); !ok {
				notes = append(notes, v.Signal)
			}
		}
		if o, ok := firstChild(tree, a.VerbToken, "obj"); ok {
			if v, ok := selectional.CheckObject(vc, st.lemmas[o-1]); !ok {
				notes = append(notes, v.Signal)
			}
		}
		if len(notes) == 0 {
			continue
		}

		flagAmbiguity(graph, actIRI, notes, false)
		for _, n := range notes {
			signals = append(signals, AmbiguitySignal{NodeIRI: actIRI, Kind: "selectional_mismatch", Detail: n})
		}
	}
	return signals
}

// lowConfidenceSignals surfaces every arc the confidence annotator
// bucketed Low (spec §4.8, §4.17 step 13) as a low_confidence
// AmbiguitySignal, keyed by the dependent token's char offset since arcs
// have no node IRI of their own.
func lowConfidenceSignals(st *sentenceState) []AmbiguitySignal {
	var signals []AmbiguitySignal
	for _, ann := range st.ann {
		if ann.Ambiguity == nil {
			continue
		}
		d := ann.Ambiguity.Dependent
		nodeRef := ""
		if d-1 >= 0 && d-1 < len(st.tokens) {
			nodeRef = st.tokens[d-1].Text + "@" + strconv.Itoa(st.tokens[d-1].Start)
		}
		signals = append(signals, AmbiguitySignal{
			NodeIRI: nodeRef,
			Kind:    "low_confidence",
			Detail:  ann.Ambiguity.Label + " probability " + strconv.FormatFloat(ann.Ambiguity.CalibratedProbability, 'f', 3, 64),
		})
	}
	return signals
}

// flagAmbiguity sets hasAmbiguity plus the relevant flag on the node
// already stored under iri, re-adding it (Graph.Add is last-writer-wins
// by IRI, so this mutates in place from the caller's perspective).
func flagAmbiguity(graph *semgraph.Graph, iri string, notes []string, metonymy bool) {
	n, ok := graph.Get(iri)
	if !ok {
		return
	}
	switch node := n.(type) {
	case semgraph.Act:
		node.Ambiguity = mergeAmbiguity(node.Ambiguity, notes, metonymy)
		graph.Add(node)
	case semgraph.RealWorldEntity:
		node.Ambiguity = mergeAmbiguity(node.Ambiguity, notes, metonymy)
		graph.Add(node)
	}
}

func mergeAmbiguity(existing *semgraph.AmbiguityFlags, notes []string, metonymy bool) *semgraph.AmbiguityFlags {
	flags := existing
	if flags == nil {
		flags = &semgraph.AmbiguityFlags{}
	}
	flags.HasAmbiguity = true
	if len(notes) > 0 {
		flags.SelectionalMismatch = true
		flags.Notes = append(flags.Notes, notes...)
	}
	if metonymy {
		flags.Metonymy = true
	}
	return flags
}
