package semparse

import (
	"strconv"
	"strings"

	"github.com/textgraph/semparse/internal/clause"
	"github.com/textgraph/semparse/internal/confidence"
	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/extract"
	"github.com/textgraph/semparse/internal/selectional"
	"github.com/textgraph/semparse/internal/semgraph"
)

// classifyStructuralVerbs marks which verb tokens route to a
// StructuralAssertion rather than an Act node: every true copula, plus
// every verb whose lemma denotes a stative relation (spec §4.14's
// copula routing and §4.12's STATIVE classes; invariant I5 — these
// never carry agent/patient roles).
func classifyStructuralVerbs(st *sentenceState, acts []extract.Act, tree *deptree.DepTree) {
	for _, a := range acts {
		if a.Copular {
			st.structuralVerbs[a.VerbToken] = true
			continue
		}
		if _, ok := stativeRelationByLemma[strings.ToLower(a.Lemma)]; ok {
			st.structuralVerbs[a.VerbToken] = true
		}
	}
}

// buildStructuralAssertions emits one StructuralAssertion per
// structural verb (spec §4.17 step 9), except a copula with an
// adjectival predicate, which is quality inherence rather than a
// subject/object relation and is emitted as a Quality node instead.
func buildStructuralAssertions(graph *semgraph.Graph, st *sentenceState, acts []extract.Act, tree *deptree.DepTree, opts BuildOptions) {
	for _, a := range acts {
		if !st.structuralVerbs[a.VerbToken] {
			continue
		}

		var subjectIRI, relation string
		var objectIRIs []string

		if a.Copular {
			predicateHead := a.VerbToken
			if arc, ok := tree.ArcOf(a.VerbToken); ok {
				predicateHead = arc.Head
			}
			if s, ok := firstChild(tree, predicateHead, "nsubj"); ok {
				subjectIRI = st.entityIRIByHead[s]
			}
			if strings.HasPrefix(tagOf(st.tags, predicateHead), "JJ") {
				if subjectIRI != "" {
					text := st.tokens[predicateHead-1].Text
					qIRI := newIRI(opts.Namespace, "Quality", text, subjectIRI, strconv.Itoa(st.tokens[predicateHead-1].Start))
					graph.Add(semgraph.Quality{
						Base:      semgraph.Base{IRIValue: qIRI, TypeValues: []string{"Quality"}},
						Text:      text,
						InheresIn: subjectIRI,
					})
				}
				continue
			}
			if predIRI, ok := st.entityIRIByHead[predicateHead]; ok {
				objectIRIs = []string{predIRI}
			}
			relation = "is_a"
		} else {
			relation = stativeRelationByLemma[strings.ToLower(a.Lemma)]
			if s, ok := firstChild(tree, a.VerbToken, "nsubj"); ok {
				subjectIRI = st.entityIRIByHead[s]
			}
			for _, c := range tree.ChildrenWithLabel(a.VerbToken, "obj") {
				if iri, ok := st.entityIRIByHead[c.Dependent]; ok {
					objectIRIs = append(objectIRIs, iri)
				}
			}
			for _, c := range tree.ChildrenWithLabel(a.VerbToken, "obl") {
				if iri, ok := st.entityIRIByHead[c.Dependent]; ok {
					objectIRIs = append(objectIRIs, iri)
				}
			}
		}

		if subjectIRI == "" && len(objectIRIs) == 0 {
			continue
		}
		identity := append([]string{subjectIRI}, objectIRIs...)
		saIRI := newIRI(opts.Namespace, "StructuralAssertion", relation, identity...)
		graph.Add(semgraph.StructuralAssertion{
			Base:            semgraph.Base{IRIValue: saIRI, TypeValues: []string{"StructuralAssertion"}},
			Subject:         subjectIRI,
			Objects:         objectIRIs,
			AssertsRelation: relation,
			Negated:         a.Negated,
		})
	}
}

// resolveRoleBearers returns the first Agent/Patient/Recipient bearer
// entity IRI for verbToken among the sentence's already-mapped roles,
// for the Act node's denormalized convenience fields.
func resolveRoleBearers(st *sentenceState, verbToken int) (agent, patient, recipient string) {
	for _, r := range st.roles {
		if !containsInt(r.RealizedIn, verbToken) {
			continue
		}
		switch r.RoleType {
		case extract.RoleAgent:
			if agent == "" {
				agent = st.entityIRIByHead[r.Bearer]
			}
		case extract.RolePatient:
			if patient == "" {
				patient = st.entityIRIByHead[r.Bearer]
			}
		case extract.RoleRecipient:
			if recipient == "" {
				recipient = st.entityIRIByHead[r.Bearer]
			}
		}
	}
	return
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func firstChild(tree *deptree.DepTree, head int, label string) (int, bool) {
	cs := tree.ChildrenWithLabel(head, label)
	if len(cs) == 0 {
		return 0, false
	}
	return cs[0].Dependent, true
}

// buildActNodes emits an Act node for every act not routed to
// StructuralAssertion (spec §4.17 step 6), retyping an inanimate-agent
// inference verb's act into an InformationContentEntity instead of an
// IntentionalAct (spec §4.14).
func buildActNodes(graph *semgraph.Graph, st *sentenceState, acts []extract.Act, opts BuildOptions) {
	for _, a := range acts {
		agent, patient, recipient := resolveRoleBearers(st, a.VerbToken)
		typeValues := []string{"IntentionalAct"}
		var isAbout, supportsInference string

		if a.IsInference {
			typeValues = []string{"InformationContentEntity", "Inference"}
			isAbout = st.entityIRIByHead[a.InferenceAbout]
			supportsInference = st.entityIRIByHead[a.SupportsInference]
			agent, patient = "", ""
		} else if vc, ok := selectional.ClassForVerb(a.Lemma); ok {
			typeValues = []string{vc.OntologyType}
		}

		actIRI := newIRI(opts.Namespace, "Act", a.Surface, strconv.Itoa(a.SpanStart), strconv.Itoa(a.SpanEnd))
		st.actIRIByVerb[a.VerbToken] = actIRI
		st.actualityByVerb[a.VerbToken] = a.ActualityStatus

		graph.Add(semgraph.Act{
			Base:              semgraph.Base{IRIValue: actIRI, TypeValues: typeValues},
			Lemma:             a.Lemma,
			Surface:           a.Surface,
			Passive:           a.Passive,
			Negated:           a.Negated,
			Copular:           a.Copular,
			Control:           a.Control,
			ControlVerb:       a.ControlVerb,
			Modality:          a.Modality,
			ActualityStatus:   a.ActualityStatus,
			Agent:             agent,
			Patient:           patient,
			Recipient:         recipient,
			SourceSpanStart:   a.SpanStart,
			SourceSpanEnd:     a.SpanEnd,
			ParseConfidence:   confidence.EntityConfidence(st.ann, []int{a.VerbToken}),
			IsAbout:           isAbout,
			SupportsInference: supportsInference,
		})
	}
}

// buildDirectives emits a DirectiveContent node for every modal act,
// linked to the act it governs via Prescribes (spec §4.17 step 7).
func buildDirectives(graph *semgraph.Graph, st *sentenceState, acts []extract.Act, opts BuildOptions) {
	for _, a := range acts {
		if a.Modality == extract.ModalityNone {
			continue
		}
		word := modalWordFor(a.Modality)
		if word == "" {
			continue
		}
		actIRI, ok := st.actIRIByVerb[a.VerbToken]
		if !ok {
			continue
		}
		text := word + " " + a.Surface
		dcIRI := newIRI(opts.Namespace, "DirectiveContent", text, actIRI)
		graph.Add(semgraph.DirectiveContent{
			Base:       semgraph.Base{IRIValue: dcIRI, TypeValues: []string{"DirectiveContent"}},
			Text:       text,
			Prescribes: actIRI,
		})
	}
}

// buildRoleNodes emits one Role node per (bearer, roleType) pair (spec
// §4.15), splitting its realizing acts into realized_in (Actual) and
// would_be_realized_in (non-Actual), per invariant I7.
func buildRoleNodes(graph *semgraph.Graph, st *sentenceState, opts BuildOptions) {
	for _, r := range st.roles {
		bearerIRI, ok := st.entityIRIByHead[r.Bearer]
		if !ok {
			continue
		}

		var realizedIn, wouldBeRealizedIn []string
		actConfidence := 1.0
		for _, verbID := range r.RealizedIn {
			actIRI, ok := st.actIRIByVerb[verbID]
			if !ok {
				continue
			}
			if st.actualityByVerb[verbID] == extract.ActualityActual {
				realizedIn = append(realizedIn, actIRI)
			} else {
				wouldBeRealizedIn = append(wouldBeRealizedIn, actIRI)
			}
			if c := confidence.EntityConfidence(st.ann, []int{verbID}); c < actConfidence {
				actConfidence = c
			}
		}
		if len(realizedIn) == 0 && len(wouldBeRealizedIn) == 0 {
			continue
		}

		entityConfidence := confidence.EntityConfidence(st.ann, []int{r.Bearer})
		roleIRI := newIRI(opts.Namespace, "Role", r.RoleType, bearerIRI)
		graph.Add(semgraph.Role{
			Base:              semgraph.Base{IRIValue: roleIRI, TypeValues: []string{r.RoleType}},
			RoleType:          r.RoleType,
			Bearer:            bearerIRI,
			RealizedIn:        realizedIn,
			WouldBeRealizedIn: wouldBeRealizedIn,
			ParseConfidence:   confidence.RoleConfidence(entityConfidence, actConfidence),
		})
	}
}

// buildClauseRelation links a split compound sentence's two clauses
// (spec §4.17 step 9): represented as a StructuralAssertion between the
// clauses' primary acts, since no dedicated clause-relation node kind
// exists in the node model and StructuralAssertion's generic
// subject/objects/relation shape fits a relation between two acts
// without inventing a new one.
func buildClauseRelation(graph *semgraph.Graph, st *sentenceState, seg clause.Segmentation, opts BuildOptions) {
	leftVerb := minVerbIn(st.actIRIByVerb, seg.LeftTokens)
	rightVerb := minVerbIn(st.actIRIByVerb, seg.RightTokens)
	if leftVerb == -1 || rightVerb == -1 {
		return
	}
	leftIRI, rightIRI := st.actIRIByVerb[leftVerb], st.actIRIByVerb[rightVerb]
	relIRI := newIRI(opts.Namespace, "StructuralAssertion", seg.Relation, leftIRI, rightIRI)
	graph.Add(semgraph.StructuralAssertion{
		Base:            semgraph.Base{IRIValue: relIRI, TypeValues: []string{"StructuralAssertion"}},
		Subject:         leftIRI,
		Objects:         []string{rightIRI},
		AssertsRelation: seg.Relation,
	})
}

// minVerbIn returns the smallest verb token id in ids that has a
// mapped act IRI, or -1 if none does. The result doesn't depend on
// actIRIByVerb's iteration order, keeping clause-relation output
// deterministic (P1).
func minVerbIn(actIRIByVerb map[int]string, ids []int) int {
	best := -1
	for _, id := range ids {
		if _, ok := actIRIByVerb[id]; !ok {
			continue
		}
		if best == -1 || id < best {
			best = id
		}
	}
	return best
}
