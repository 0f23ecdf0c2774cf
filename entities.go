package semparse

import (
	"sort"
	"strconv"
	"strings"

	"github.com/textgraph/semparse/internal/cd"
	"github.com/textgraph/semparse/internal/confidence"
	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/extract"
	"github.com/textgraph/semparse/internal/semgraph"
	"github.com/textgraph/semparse/internal/token"
)

func tagOf(tags []string, id int) string {
	if id-1 < 0 || id-1 >= len(tags) {
		return ""
	}
	return tags[id-1]
}

// buildEntityNodes emits a RealWorldEntity/DiscourseReferent pair for
// every extracted entity (spec §3's two-tier model), except anaphoric
// relative pronouns, which reuse their antecedent's RealWorldEntity IRI
// instead of denoting a fresh individual (spec §4.17 step 5).
func buildEntityNodes(graph *semgraph.Graph, st *sentenceState, entities []extract.Entity, anaphora map[int]int, cdSpans []cd.Span, opts BuildOptions) {
	for _, e := range entities {
		charStart, charEnd := entitySpan(st.tokens, e)

		if antecedent, ok := anaphora[e.HeadToken]; ok {
			if iri, ok2 := st.entityIRIByHead[antecedent]; ok2 {
				st.entityIRIByHead[e.HeadToken] = iri
				drIRI := newIRI(opts.Namespace, "DiscourseReferent", e.Text, strconv.Itoa(charStart), strconv.Itoa(charEnd))
				graph.Add(semgraph.DiscourseReferent{
					Base:              semgraph.Base{IRIValue: drIRI, TypeValues: []string{"DiscourseReferent"}},
					Text:              e.Text,
					CharStart:         charStart,
					CharEnd:           charEnd,
					ReferentialStatus: "anaphoric",
					IsAbout:           iri,
				})
				continue
			}
		}

		rweIRI := newIRI(opts.Namespace, "RealWorldEntity", e.Text, strconv.Itoa(charStart), strconv.Itoa(charEnd))
		st.entityIRIByHead[e.HeadToken] = rweIRI
		graph.Add(semgraph.RealWorldEntity{
			Base:                   semgraph.Base{IRIValue: rweIRI, TypeValues: []string{e.DenotedType}},
			DenotedType:            e.DenotedType,
			Aliases:                e.Aliases,
			IntroducingPreposition: e.IntroducingPreposition,
			ResolutionProvenance:   e.ResolutionProvenance,
			ParseConfidence:        confidence.EntityConfidence(st.ann, e.Span),
		})

		drIRI := newIRI(opts.Namespace, "DiscourseReferent", e.Text, strconv.Itoa(charStart), strconv.Itoa(charEnd))
		status := referentialStatus(st.tree, e.HeadToken, tagOf(st.tags, e.HeadToken), st.tokens)
		graph.Add(semgraph.DiscourseReferent{
			Base:              semgraph.Base{IRIValue: drIRI, TypeValues: []string{"DiscourseReferent"}},
			Text:              e.Text,
			CharStart:         charStart,
			CharEnd:           charEnd,
			ReferentialStatus: status,
			IsAbout:           rweIRI,
		})
	}
}

// buildAggregates groups a conj-coordinated set of already-extracted
// entities ("cats and dogs") into one ObjectAggregate RealWorldEntity
// whose Members list the constituents (spec §4.13 aggregates); the
// constituents remain in the graph individually so role and quality
// links keep working per-member.
func buildAggregates(graph *semgraph.Graph, st *sentenceState, entities []extract.Entity, tree *deptree.DepTree, opts BuildOptions) {
	entityHeads := make(map[int]bool, len(entities))
	for _, e := range entities {
		entityHeads[e.HeadToken] = true
	}

	groups := make(map[int][]int)
	for _, e := range entities {
		arc, ok := tree.ArcOf(e.HeadToken)
		if !ok || arc.Label != "conj" || !entityHeads[arc.Head] {
			continue
		}
		groups[arc.Head] = append(groups[arc.Head], e.HeadToken)
	}

	parents := make([]int, 0, len(groups))
	for p := range groups {
		parents = append(parents, p)
	}
	sort.Ints(parents)

	for _, parent := range parents {
		parentIRI, ok := st.entityIRIByHead[parent]
		if !ok {
			continue
		}
		conjuncts := groups[parent]
		sort.Ints(conjuncts)
		members := []string{parentIRI}
		identity := []string{parentIRI}
		for _, c := range conjuncts {
			if iri, ok := st.entityIRIByHead[c]; ok {
				members = append(members, iri)
				identity = append(identity, iri)
			}
		}
		if len(members) < 2 {
			continue
		}
		aggIRI := newIRI(opts.Namespace, "RealWorldEntity", "aggregate", identity...)
		graph.Add(semgraph.RealWorldEntity{
			Base:                 semgraph.Base{IRIValue: aggIRI, TypeValues: []string{"ObjectAggregate"}},
			DenotedType:          "ObjectAggregate",
			IsAggregate:          true,
			Members:              members,
			ResolutionProvenance: "none",
			ParseConfidence:      1.0,
		})
	}
}

// buildQualities attaches adjectival modifiers of an entity's head as
// Quality nodes inhering in it (spec §3). Scarcity/quantifier
// adjectives (few, several, many, ...) are gated by ExtractScarcity
// separately from ordinary descriptive adjectives, gated by
// ExtractQualities.
func buildQualities(graph *semgraph.Graph, st *sentenceState, entities []extract.Entity, tree *deptree.DepTree, tokens []token.Token, tags []string, opts BuildOptions) {
	for _, e := range entities {
		entityIRI, ok := st.entityIRIByHead[e.HeadToken]
		if !ok {
			continue
		}
		var mods []deptree.Arc
		mods = append(mods, tree.ChildrenWithLabel(e.HeadToken, "amod")...)
		mods = append(mods, tree.ChildrenWithLabel(e.HeadToken, "advmod")...)
		for _, m := range mods {
			if !strings.HasPrefix(tagOf(tags, m.Dependent), "JJ") {
				continue
			}
			lemma := strings.ToLower(st.lemmas[m.Dependent-1])
			if scarcityAdjectives[lemma] {
				if !opts.ExtractScarcity {
					continue
				}
			} else if !opts.ExtractQualities {
				continue
			}
			text := tokens[m.Dependent-1].Text
			qIRI := newIRI(opts.Namespace, "Quality", text, entityIRI, strconv.Itoa(tokens[m.Dependent-1].Start))
			graph.Add(semgraph.Quality{
				Base:      semgraph.Base{IRIValue: qIRI, TypeValues: []string{"Quality"}},
				Text:      text,
				InheresIn: entityIRI,
			})
		}
	}
}

// linkTemporalRegions links every non-temporal, non-Person entity in
// the sentence to the sentence's first TemporalRegion entity (spec
// §4.17 step 12).
func linkTemporalRegions(graph *semgraph.Graph, st *sentenceState, entities []extract.Entity) {
	var temporalIRI string
	for _, e := range entities {
		if e.DenotedType != "TemporalRegion" {
			continue
		}
		if iri, ok := st.entityIRIByHead[e.HeadToken]; ok {
			temporalIRI = iri
			break
		}
	}
	if temporalIRI == "" {
		return
	}
	for _, e := range entities {
		if e.DenotedType == "TemporalRegion" || e.DenotedType == "Person" {
			continue
		}
		iri, ok := st.entityIRIByHead[e.HeadToken]
		if !ok {
			continue
		}
		n, ok := graph.Get(iri)
		if !ok {
			continue
		}
		rwe, ok := n.(semgraph.RealWorldEntity)
		if !ok {
			continue
		}
		rwe.TemporalRegion = temporalIRI
		graph.Add(rwe)
	}
}
