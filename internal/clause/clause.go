// Package clause implements the Clause Segmenter (spec §4.11): a
// three-case decision over the first coordinating conjunction in a
// sentence, plus the conjunction-to-relation mapping used when two
// clauses are split.
package clause

import (
	"strings"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/token"
)

// coordinators are the coordinating conjunctions the segmenter looks
// for (spec §4.11).
var coordinators = map[string]bool{
	"and": true, "but": true, "or": true, "nor": true, "yet": true, "so": true,
}

// passiveAuxiliaries introduce a Case B split (spec §4.11 "right side
// begins with passive auxiliary").
var passiveAuxiliaries = map[string]bool{
	"is": true, "was": true, "were": true, "are": true, "been": true, "be": true,
}

var modalAuxiliaries = map[string]bool{
	"must": true, "shall": true, "should": true, "ought": true,
	"may": true, "can": true, "will": true, "would": true, "could": true, "might": true,
}

// Case identifies which of the three coordination outcomes applied.
type Case string

const (
	CaseASplitIndependent Case = "A"
	CaseBSplitInjectSubj  Case = "B"
	CaseCNoSplit          Case = "C"
)

// Segmentation is the result of segmenting a sentence around its first
// coordinating conjunction.
type Segmentation struct {
	Found            bool
	ConjunctionIndex int // token index of the coordinator, -1 if Found is false
	ConjunctionText  string
	Case             Case
	Relation         string // and_then, contrasts_with, alternative_to, in_order_that, therefore
	LeftTokens       []int  // 1-based token ids of the left clause
	RightTokens      []int
	InjectedSubject  []int // 1-based token ids of the subject injected into the right clause (Case B only)
}

// Segment scans tokens for the first coordinating conjunction and
// applies the three-case decision (spec §4.11). tree supplies the
// dependency structure needed to detect "explicit subject+verb on both
// sides" (Case A) and bare-VP coordination (Case C).
func Segment(tokens []token.Token, tags []string, tree *deptree.DepTree) Segmentation {
	conjIdx := -1
	for i, tok := range tokens {
		if coordinators[strings.ToLower(tok.Text)] {
			conjIdx = i
			break
		}
	}
	if conjIdx == -1 {
		return Segmentation{Found: false, ConjunctionIndex: -1}
	}

	conjText := strings.ToLower(tokens[conjIdx].Text)
	leftIDs := idRange(0, conjIdx)            // token ids 1..conjIdx
	rightIDs := idRange(conjIdx+1, len(tokens)) // token ids after the conjunction

	rightHasOwnSubject := hasSubjectAndVerb(rightIDs, tree, tags)
	leftHasSubjectAndVerb := hasSubjectAndVerb(leftIDs, tree, tags)

	seg := Segmentation{
		Found:            true,
		ConjunctionIndex: conjIdx,
		ConjunctionText:  conjText,
		LeftTokens:       leftIDs,
		RightTokens:      rightIDs,
		Relation:         relationFor(conjText, tokens, conjIdx),
	}

	switch {
	case leftHasSubjectAndVerb && rightHasOwnSubject:
		seg.Case = CaseASplitIndependent
	case beginsWithPassiveOrDidInversion(rightIDs, tokens, tags):
		seg.Case = CaseBSplitInjectSubj
		seg.InjectedSubject = subjectOf(leftIDs, tree, tags)
	default:
		seg.Case = CaseCNoSplit
	}

	return seg
}

// relationFor maps the coordinator to its semantic relation (spec
// §4.11). "so" disambiguates to in_order_that when followed by "that",
// "as to", or a modal auxiliary; otherwise it's "therefore".
func relationFor(conj string, tokens []token.Token, conjIdx int) string {
	switch conj {
	case "and":
		return "and_then"
	case "but", "yet":
		return "contrasts_with"
	case "or", "nor":
		return "alternative_to"
	case "so":
		if followsWithThatAsToOrModal(tokens, conjIdx) {
			return "in_order_that"
		}
		return "therefore"
	}
	return ""
}

func followsWithThatAsToOrModal(tokens []token.Token, conjIdx int) bool {
	if conjIdx+1 >= len(tokens) {
		return false
	}
	next := strings.ToLower(tokens[conjIdx+1].Text)
	if next == "that" {
		return true
	}
	if next == "as" && conjIdx+2 < len(tokens) && strings.ToLower(tokens[conjIdx+2].Text) == "to" {
		return true
	}
	return modalAuxiliaries[next]
}

// hasSubjectAndVerb reports whether the token-id range contains both an
// nsubj/nsubj:pass dependent and a verb tag among ids.
func hasSubjectAndVerb(ids []int, tree *deptree.DepTree, tags []string) bool {
	if tree == nil || len(ids) == 0 {
		return false
	}
	hasSubj, hasVerb := false, false
	idSet := make(map[int]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
		if id-1 >= 0 && id-1 < len(tags) && strings.HasPrefix(tags[id-1], "VB") {
			hasVerb = true
		}
	}
	for _, a := range tree.Arcs() {
		if !idSet[a.Dependent] {
			continue
		}
		if a.Label == "nsubj" || a.Label == "nsubj:pass" {
			hasSubj = true
		}
	}
	return hasSubj && hasVerb
}

func subjectOf(ids []int, tree *deptree.DepTree, tags []string) []int {
	if tree == nil {
		return nil
	}
	idSet := make(map[int]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var subj []int
	for _, a := range tree.Arcs() {
		if idSet[a.Dependent] && (a.Label == "nsubj" || a.Label == "nsubj:pass") {
			subj = append(subj, tree.EntitySubtree(a.Dependent)...)
		}
	}
	return subj
}

// beginsWithPassiveOrDidInversion reports whether the right clause
// opens with a passive auxiliary or a "did"-style inversion (spec
// §4.11 Case B).
func beginsWithPassiveOrDidInversion(rightIDs []int, tokens []token.Token, tags []string) bool {
	if len(rightIDs) == 0 {
		return false
	}
	firstID := rightIDs[0]
	if firstID-1 < 0 || firstID-1 >= len(tokens) {
		return false
	}
	first := strings.ToLower(tokens[firstID-1].Text)
	if passiveAuxiliaries[first] {
		return true
	}
	if first == "did" || first == "does" || first == "do" {
		return true
	}
	return false
}

// idRange converts the half-open 0-based token-slice range
// [startTok, endTok) into 1-based token ids.
func idRange(startTok, endTok int) []int {
	var out []int
	for i := startTok; i < endTok; i++ {
		out = append(out, i+1)
	}
	return out
}
