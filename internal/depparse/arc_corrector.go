package depparse

import (
	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/token"
)

// ditransitiveVerbs is the fixed verb-lemma set the corrector rewrites
// around (spec §4.6).
var ditransitiveVerbs = map[string]bool{
	"give": true, "send": true, "hand": true, "show": true, "tell": true,
	"offer": true, "teach": true, "bring": true, "pass": true, "award": true,
}

// recipientCapableNouns are common nouns allowed to stand as a
// reparented indirect object alongside proper nouns (spec §4.6 "(c)").
var recipientCapableNouns = map[string]bool{
	"patient": true, "student": true, "committee": true, "client": true,
	"customer": true, "team": true, "board": true, "jury": true,
	"class": true, "audience": true, "panel": true,
}

// CorrectArcs applies the ditransitive compound->iobj rewrite to a
// completed parse (spec §4.6). lemmas[i] and tags[i] correspond to
// tokens[i] (1-based token ids are i+1). CorrectArcs returns a new arc
// slice; the input is left untouched.
func CorrectArcs(arcs []deptree.Arc, tokens []token.Token, tags, lemmas []string) []deptree.Arc {
	out := make([]deptree.Arc, len(arcs))
	copy(out, arcs)
	tree := deptree.New(out, len(tokens))

	byDependent := make(map[int]int, len(out)) // dependent -> index in out
	for i, a := range out {
		byDependent[a.Dependent] = i
	}

	for id := 1; id <= len(tokens); id++ {
		if !ditransitiveVerbs[lemmas[id-1]] {
			continue
		}

		objs := tree.ChildrenWithLabel(id, "obj")
		for _, objArc := range objs {
			objHead := objArc.Dependent
			compound := findCompound(tree, objHead, tags, lemmas)
			if compound == 0 {
				continue
			}

			idx, ok := byDependent[compound]
			if !ok {
				continue
			}
			out[idx].Label = "iobj"
			out[idx].Head = id

			if detIdx, found := findPrecedingDet(tree, objHead, compound, byDependent); found {
				out[detIdx].Head = compound
			}
		}
	}

	return out
}

// findCompound returns the dependent id of objHead's `compound` child
// that linearly precedes objHead, is tagged NN/NNP, and is either a
// proper noun or a recipient-capable common noun. Returns 0 if none
// qualifies.
func findCompound(tree *deptree.DepTree, objHead int, tags, lemmas []string) int {
	for _, a := range tree.ChildrenWithLabel(objHead, "compound") {
		dep := a.Dependent
		if dep >= objHead {
			continue
		}
		tag := tags[dep-1]
		if tag != "NN" && tag != "NNP" {
			continue
		}
		if tag == "NNP" || recipientCapableNouns[lemmas[dep-1]] {
			return dep
		}
	}
	return 0
}

// findPrecedingDet locates a `det` child of objHead that linearly
// precedes compound, returning its index in the arc slice and whether
// one was found.
func findPrecedingDet(tree *deptree.DepTree, objHead, compound int, byDependent map[int]int) (idx int, found bool) {
	for _, a := range tree.ChildrenWithLabel(objHead, "det") {
		if a.Dependent < compound {
			if i, ok := byDependent[a.Dependent]; ok {
				return i, true
			}
		}
	}
	return 0, false
}
