package extract

import (
	"strings"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/token"
)

// Modality values (spec §3, §4.14).
const (
	ModalityNone           = ""
	ModalityObligation     = "obligation"
	ModalityObligationWeak = "obligation_weak"
	ModalityPermission     = "permission"
	ModalityProhibition    = "prohibition"
	ModalityIntention      = "intention"
)

// Actuality status values (spec §3).
const (
	ActualityActual       = "Actual"
	ActualityPrescribed   = "Prescribed"
	ActualityHypothetical = "Hypothetical"
)

var obligationModals = map[string]bool{"must": true, "shall": true}
var obligationWeakModals = map[string]bool{"should": true, "ought": true}
var permissionModals = map[string]bool{"may": true, "can": true}
var prohibitionModals = map[string]bool{"cannot": true}
var intentionMarkers = map[string]bool{"will": true}

// inferenceVerbs trigger inanimate-agent retyping into an
// InformationContentEntity rather than an IntentionalAct (spec §4.14).
var inferenceVerbs = map[string]bool{
	"suggest": true, "indicate": true, "show": true, "imply": true,
	"demonstrate": true, "reveal": true, "confirm": true,
}

// conditionalMarkers signal Hypothetical actuality (spec §4.14's
// "conditional markers").
var conditionalMarkers = map[string]bool{"if": true, "unless": true, "provided": true}

// Act is one extracted verb-headed predication, prior to role mapping.
type Act struct {
	VerbToken       int
	Lemma           string
	Surface         string
	Passive         bool
	Negated         bool
	Copular         bool
	Control         bool
	ControlVerb     string
	Modality        string
	ActualityStatus string
	SpanStart       int
	SpanEnd         int

	// IsInference marks an act that spec §4.14's inanimate-agent
	// retyping converts into an InformationContentEntity instead of an
	// IntentionalAct; the caller (graph builder) reads this flag to
	// choose which node kind to emit.
	IsInference       bool
	InferenceAbout    int // nominal subject token id (is_about)
	SupportsInference int // object token id (supports_inference)
}

// ExtractActs walks every verb token in tree and builds an Act (spec
// §4.14). cdContains, when non-nil, suppresses any verb token whose char
// offset falls inside an active Complex Designator span (spec §4.17
// step 6). A verb that is itself the xcomp of another verb ("needs to
// drop") is promoted to be the act, inheriting the control verb's
// modality; the control verb itself is not emitted as a separate act.
func ExtractActs(tokens []token.Token, tags, lemmas []string, tree *deptree.DepTree, cdContains func(charStart, charEnd int) bool) []Act {
	controlHeads := make(map[int]bool)
	for id := 1; id <= len(tokens); id++ {
		arc, ok := tree.ArcOf(id)
		if !ok || arc.Label != "xcomp" {
			continue
		}
		if id-1 >= 0 && id-1 < len(tags) && strings.HasPrefix(tags[id-1], "VB") &&
			arc.Head-1 >= 0 && arc.Head-1 < len(tags) && strings.HasPrefix(tags[arc.Head-1], "VB") {
			controlHeads[arc.Head] = true
		}
	}

	var acts []Act

	for id := 1; id <= len(tokens); id++ {
		if id-1 >= len(tags) || !strings.HasPrefix(tags[id-1], "VB") {
			continue
		}
		if controlHeads[id] {
			continue
		}
		// Auxiliaries ("was" in a passive, "does" in a negation) belong to
		// the act of the verb they attach to, not to an act of their own.
		if arc, ok := tree.ArcOf(id); ok && (arc.Label == "aux" || arc.Label == "aux:pass") {
			continue
		}
		tok := tokens[id-1]
		if cdContains != nil && cdContains(tok.Start, tok.End) {
			continue
		}

		lemma := headLemmaOf(lemmas, id)
		passive := hasChildLabel(tree, id, "aux:pass") || hasChildLabel(tree, id, "nsubj:pass")
		negated := hasNegation(tree, id, tokens)
		// A copula ("is", "was", ...) is the cop-labeled DEPENDENT of its
		// predicate, not the governor of one — "The doctor is tired" has
		// cop(tired, is), so the check is on id's own arc, not its children.
		copular := false
		if arc, ok := tree.ArcOf(id); ok && arc.Label == "cop" {
			copular = true
		}

		modalityHead := id
		isControl := false
		controlVerbLemma := ""
		if arc, ok := tree.ArcOf(id); ok && arc.Label == "xcomp" && controlHeads[arc.Head] {
			isControl = true
			controlVerbLemma = headLemmaOf(lemmas, arc.Head)
			modalityHead = arc.Head
		}

		modality, _ := modalityOf(tree, modalityHead, tokens)
		if isControl && modality == ModalityNone {
			modality = ModalityObligation // "needs to" defaults to obligation (spec S7)
		}
		actuality := actualityFor(modality, tree, modalityHead, tokens)

		act := Act{
			VerbToken:       id,
			Lemma:           lemma,
			Surface:         tok.Text,
			Passive:         passive,
			Negated:         negated,
			Copular:         copular,
			Control:         isControl,
			ControlVerb:     controlVerbLemma,
			Modality:        modality,
			ActualityStatus: actuality,
			SpanStart:       tok.Start,
			SpanEnd:         tok.End,
		}

		if subj, ok := subjectOfVerb(tree, id); ok && !passive && inferenceVerbs[lemma] {
			if obj, hasObj := objectOfVerb(tree, id); hasObj {
				act.IsInference = true
				act.InferenceAbout = subj
				act.SupportsInference = obj
			}
		}

		acts = append(acts, act)
	}

	return acts
}

func hasChildLabel(tree *deptree.DepTree, head int, label string) bool {
	return len(tree.ChildrenWithLabel(head, label)) > 0
}

func hasNegation(tree *deptree.DepTree, head int, tokens []token.Token) bool {
	if hasChildLabel(tree, head, "neg") {
		return true
	}
	for _, a := range tree.ChildrenOf(head) {
		if a.Dependent-1 >= 0 && a.Dependent-1 < len(tokens) {
			t := strings.ToLower(tokens[a.Dependent-1].Text)
			if t == "not" || t == "n't" {
				return true
			}
		}
	}
	return false
}

// modalityOf inspects head's modal auxiliary children and classifies
// modality per spec §4.14.
func modalityOf(tree *deptree.DepTree, head int, tokens []token.Token) (modality, word string) {
	for _, a := range tree.ChildrenWithLabel(head, "aux") {
		if a.Dependent-1 < 0 || a.Dependent-1 >= len(tokens) {
			continue
		}
		w := strings.ToLower(tokens[a.Dependent-1].Text)
		switch {
		case obligationModals[w]:
			return ModalityObligation, w
		case obligationWeakModals[w]:
			return ModalityObligationWeak, w
		case permissionModals[w]:
			return ModalityPermission, w
		case prohibitionModals[w]:
			return ModalityProhibition, w
		case intentionMarkers[w]:
			return ModalityIntention, w
		}
	}
	return ModalityNone, ""
}

// actualityFor maps modality and conditional markers to an actuality
// status (spec §4.14): Actual by default; Prescribed under
// obligation/prohibition; Hypothetical under a conditional marker.
func actualityFor(modality string, tree *deptree.DepTree, head int, tokens []token.Token) string {
	if hasConditionalMarker(tree, head, tokens) {
		return ActualityHypothetical
	}
	switch modality {
	case ModalityObligation, ModalityObligationWeak, ModalityProhibition:
		return ActualityPrescribed
	}
	return ActualityActual
}

func hasConditionalMarker(tree *deptree.DepTree, head int, tokens []token.Token) bool {
	for _, a := range tree.ChildrenWithLabel(head, "mark") {
		if a.Dependent-1 >= 0 && a.Dependent-1 < len(tokens) {
			if conditionalMarkers[strings.ToLower(tokens[a.Dependent-1].Text)] {
				return true
			}
		}
	}
	for _, a := range tree.ChildrenWithLabel(head, "advcl") {
		if hasConditionalMarker(tree, a.Dependent, tokens) {
			return true
		}
	}
	return false
}

func subjectOfVerb(tree *deptree.DepTree, verb int) (int, bool) {
	for _, a := range tree.ChildrenWithLabel(verb, "nsubj") {
		return a.Dependent, true
	}
	return 0, false
}

func objectOfVerb(tree *deptree.DepTree, verb int) (int, bool) {
	for _, a := range tree.ChildrenWithLabel(verb, "obj") {
		return a.Dependent, true
	}
	return 0, false
}
