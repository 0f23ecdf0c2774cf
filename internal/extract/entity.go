// Package extract implements the tree-walking entity, act, and role
// extractors (spec §4.13-§4.15): they derive Tier-2 RealWorldEntity
// nodes, IntentionalAct/StructuralAssertion nodes, and Role nodes from
// a finished, confidence-annotated dependency tree.
package extract

import (
	"strings"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/gazetteer"
	"github.com/textgraph/semparse/internal/selectional"
	"github.com/textgraph/semparse/internal/token"
)

// nominalArgumentLabels are the UD labels that make a head token a
// nominal argument worth extracting as an entity (spec §4.13).
var nominalArgumentLabels = map[string]bool{
	"nsubj": true, "nsubj:pass": true, "obj": true, "iobj": true,
	"obl": true, "nmod": true, "conj": true,
}

// nounOrPronounTags are the POS tags that qualify a token as a nominal
// head.
var nounOrPronounTags = map[string]bool{
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
	"PRP": true, "PRP$": true, "WP": true,
}

// pronounDenotedTypes maps closed-class pronouns to their denoted type
// (spec §4.13 "(c) pronoun map").
var pronounDenotedTypes = map[string]string{
	"he": "Person", "she": "Person", "him": "Person", "her": "Person",
	"it": "IndependentContinuant",
	"they": "ObjectAggregate", "them": "ObjectAggregate",
	"this": "Entity", "that": "Entity",
}

// temporalNouns map plural/singular calendar-unit nouns to TemporalRegion
// (spec §4.13 "(b)").
var temporalNouns = map[string]bool{
	"day": true, "days": true, "week": true, "weeks": true,
	"month": true, "months": true, "year": true, "years": true,
	"hour": true, "hours": true, "minute": true, "minutes": true, "second": true, "seconds": true,
}

// cognitiveVerbs trigger the verb-refinement pass toward
// InformationContentEntity (spec §4.13 "(d)").
var cognitiveVerbs = map[string]bool{
	"review": true, "read": true, "study": true, "analyze": true,
	"evaluate": true, "examine": true, "assess": true, "consider": true,
	"inspect": true,
}

// physicalVerbs preserve the Artifact type under verb refinement.
var physicalVerbs = map[string]bool{
	"carry": true, "build": true, "move": true, "lift": true, "push": true,
	"hold": true, "transport": true,
}

// Entity is one extracted nominal-argument entity, carrying everything
// the role mapper and graph builder need: its head token, contiguous
// span, default denoted type, and apposition-derived aliases.
type Entity struct {
	HeadToken              int
	Span                   []int // sorted contiguous token ids
	Text                   string
	DenotedType            string
	Aliases                []string
	ResolutionProvenance   string
	IntroducingPreposition string
}

// ExtractEntities walks every nominal-argument head in tree and
// produces one Entity per head (spec §4.13). tags/lemmas are indexed by
// token id - 1.
func ExtractEntities(tokens []token.Token, tags, lemmas []string, tree *deptree.DepTree, gz *gazetteer.Gazetteer) []Entity {
	var entities []Entity
	seen := make(map[int]bool)
	roots := tree.Roots()

	for id := 1; id <= len(tokens); id++ {
		arc, hasArc := tree.ArcOf(id)
		isRoot := containsInt(roots, id)

		qualifies := false
		if hasArc && nominalArgumentLabels[arc.Label] {
			qualifies = true
		}
		if isRoot && id-1 < len(tags) && nounOrPronounTags[tags[id-1]] {
			qualifies = true
		}
		if !qualifies || seen[id] {
			continue
		}
		if id-1 >= len(tags) || !nounOrPronounTags[tags[id-1]] {
			continue
		}
		seen[id] = true

		span := tree.EntitySubtree(id)
		text := spanText(tokens, span)
		headWord := tokens[id-1].Text
		headLemma := headLemmaOf(lemmas, id)

		denotedType, provenance := denotedTypeFor(headWord, headLemma, text, tags[id-1], gz)

		aliases := aliasesFor(tree, id, tokens)

		intro := ""
		if hasArc && arc.Label == "obl" {
			intro = prepositionOf(tree, id, tokens)
		}

		entities = append(entities, Entity{
			HeadToken:              id,
			Span:                   span,
			Text:                   text,
			DenotedType:            denotedType,
			Aliases:                aliases,
			ResolutionProvenance:   provenance,
			IntroducingPreposition: intro,
		})
	}

	return entities
}

// denotedTypeFor applies the (a)-(c) precedence from spec §4.13; the
// (d) verb-refinement pass is applied separately once the governing
// act's lemma is known (see RefineByVerb).
func denotedTypeFor(headWord, headLemma, fullSpanText, tag string, gz *gazetteer.Gazetteer) (denotedType, provenance string) {
	if e, kind := gz.Lookup(fullSpanText); kind != gazetteer.NoMatch {
		return e.Type, string(kind)
	}
	if e, kind := gz.Lookup(headWord); kind != gazetteer.NoMatch {
		return e.Type, string(kind)
	}

	if pronounType, ok := pronounDenotedTypes[strings.ToLower(headWord)]; ok {
		return pronounType, "none"
	}

	if temporalNouns[strings.ToLower(headLemma)] {
		return "TemporalRegion", "none"
	}

	switch selectional.CategoryFor(headLemma) {
	case selectional.Animate:
		return "Person", "none"
	case selectional.Organization:
		return "Organization", "none"
	case selectional.Material:
		return "Artifact", "none"
	case selectional.Abstract:
		return "Quality", "none"
	case selectional.Proposition:
		return "Proposition", "none"
	default:
		return "IndependentContinuant", "none"
	}
}

// RefineByVerb applies spec §4.13's verb-refinement pass: a cognitive
// verb's ambiguous-typed object refines to InformationContentEntity; a
// physical verb's object preserves Artifact.
func RefineByVerb(currentType, verbLemma string) string {
	verbLemma = strings.ToLower(verbLemma)
	if cognitiveVerbs[verbLemma] && isAmbiguousDefault(currentType) {
		return "InformationContentEntity"
	}
	if physicalVerbs[verbLemma] && currentType == "InformationContentEntity" {
		return "Artifact"
	}
	return currentType
}

func isAmbiguousDefault(t string) bool {
	return t == "IndependentContinuant" || t == "Artifact" || t == "Proposition"
}

// aliasesFor collects appos-children spans as text aliases on the head
// entity, per spec §4.13 "Appositions produce aliases on the head
// entity rather than new entities."
func aliasesFor(tree *deptree.DepTree, head int, tokens []token.Token) []string {
	groups := tree.Appositions(head)
	aliases := make([]string, 0, len(groups))
	for _, g := range groups {
		aliases = append(aliases, spanText(tokens, g))
	}
	return aliases
}

// prepositionOf returns the lowercase text of head's `case` child, the
// governing preposition for an obl argument.
func prepositionOf(tree *deptree.DepTree, head int, tokens []token.Token) string {
	for _, a := range tree.ChildrenWithLabel(head, "case") {
		if a.Dependent-1 >= 0 && a.Dependent-1 < len(tokens) {
			return strings.ToLower(tokens[a.Dependent-1].Text)
		}
	}
	return ""
}

func spanText(tokens []token.Token, ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if id-1 >= 0 && id-1 < len(tokens) {
			parts = append(parts, tokens[id-1].Text)
		}
	}
	return strings.Join(parts, " ")
}

func headLemmaOf(lemmas []string, id int) string {
	if id-1 >= 0 && id-1 < len(lemmas) {
		return lemmas[id-1]
	}
	return ""
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
