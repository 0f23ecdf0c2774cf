package extract

import (
	"testing"

	"github.com/textgraph/semparse/internal/deptree"
)

func findRole(roles []Role, bearer int, roleType string) (Role, bool) {
	for _, r := range roles {
		if r.Bearer == bearer && r.RoleType == roleType {
			return r, true
		}
	}
	return Role{}, false
}

// "She gave the committee an award ."
func ditransitiveRoleArcs() []deptree.Arc {
	return []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "nsubj"},
		{Dependent: 2, Head: 0, Label: "root"},
		{Dependent: 3, Head: 4, Label: "det"},
		{Dependent: 4, Head: 2, Label: "iobj"},
		{Dependent: 5, Head: 6, Label: "det"},
		{Dependent: 6, Head: 2, Label: "obj"},
		{Dependent: 7, Head: 2, Label: "punct"},
	}
}

func TestMapRolesDitransitiveAssignsAgentRecipientPatient(t *testing.T) {
	tokens := mkTokens("She", "gave", "the", "committee", "an", "award", ".")
	lemmas := []string{"she", "give", "the", "committee", "a", "award", "."}
	tree := deptree.New(ditransitiveRoleArcs(), len(tokens))
	acts := []Act{{VerbToken: 2, Lemma: "give"}}

	roles := MapRoles(tokens, lemmas, tree, acts)

	if r, ok := findRole(roles, 1, RoleAgent); !ok || len(r.RealizedIn) != 1 || r.RealizedIn[0] != 2 {
		t.Errorf("agent role missing or wrong realizedIn: %+v", r)
	}
	if r, ok := findRole(roles, 4, RoleRecipient); !ok {
		t.Errorf("recipient role missing: %+v", roles)
	} else if len(r.RealizedIn) != 1 || r.RealizedIn[0] != 2 {
		t.Errorf("recipient realizedIn = %v, want [2]", r.RealizedIn)
	}
	if _, ok := findRole(roles, 6, RolePatient); !ok {
		t.Errorf("patient role missing: %+v", roles)
	}
}

// "John and Mary left ." with Mary as conj of John.
func conjRoleArcs() []deptree.Arc {
	return []deptree.Arc{
		{Dependent: 1, Head: 4, Label: "nsubj"},
		{Dependent: 2, Head: 3, Label: "cc"},
		{Dependent: 3, Head: 1, Label: "conj"},
		{Dependent: 4, Head: 0, Label: "root"},
	}
}

func TestMapRolesConjunctInheritsRoleType(t *testing.T) {
	tokens := mkTokens("John", "and", "Mary", "left")
	lemmas := []string{"john", "and", "mary", "leave"}
	tree := deptree.New(conjRoleArcs(), len(tokens))
	acts := []Act{{VerbToken: 4, Lemma: "leave"}}

	roles := MapRoles(tokens, lemmas, tree, acts)

	if _, ok := findRole(roles, 1, RoleAgent); !ok {
		t.Errorf("expected John to have AgentRole: %+v", roles)
	}
	if _, ok := findRole(roles, 3, RoleAgent); !ok {
		t.Errorf("expected conjunct Mary to inherit AgentRole: %+v", roles)
	}
}

// "The gun was taken by him ."
func passiveAgentArcs() []deptree.Arc {
	return []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "det"},
		{Dependent: 2, Head: 4, Label: "nsubj:pass"},
		{Dependent: 3, Head: 4, Label: "aux:pass"},
		{Dependent: 4, Head: 0, Label: "root"},
		{Dependent: 5, Head: 6, Label: "case"},
		{Dependent: 6, Head: 4, Label: "obl"},
		{Dependent: 7, Head: 4, Label: "punct"},
	}
}

func TestMapRolesPassiveByPhraseIsAgent(t *testing.T) {
	tokens := mkTokens("The", "gun", "was", "taken", "by", "him", ".")
	lemmas := []string{"the", "gun", "be", "take", "by", "he", "."}
	tree := deptree.New(passiveAgentArcs(), len(tokens))
	acts := []Act{{VerbToken: 4, Lemma: "take", Passive: true}}

	roles := MapRoles(tokens, lemmas, tree, acts)

	if _, ok := findRole(roles, 2, RolePatient); !ok {
		t.Errorf("expected nsubj:pass bearer to be Patient: %+v", roles)
	}
	if _, ok := findRole(roles, 6, RoleAgent); !ok {
		t.Errorf("expected by-phrase bearer to be Agent: %+v", roles)
	}
}

// "He cut the rope with a knife ."
func instrumentArcs() []deptree.Arc {
	return []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "nsubj"},
		{Dependent: 2, Head: 0, Label: "root"},
		{Dependent: 3, Head: 4, Label: "det"},
		{Dependent: 4, Head: 2, Label: "obj"},
		{Dependent: 5, Head: 7, Label: "case"},
		{Dependent: 6, Head: 7, Label: "det"},
		{Dependent: 7, Head: 2, Label: "obl"},
	}
}

func TestMapRolesWithInanimateObjectIsInstrument(t *testing.T) {
	tokens := mkTokens("He", "cut", "the", "rope", "with", "a", "knife")
	lemmas := []string{"he", "cut", "the", "rope", "with", "a", "knife"}
	tree := deptree.New(instrumentArcs(), len(tokens))
	acts := []Act{{VerbToken: 2, Lemma: "cut"}}

	roles := MapRoles(tokens, lemmas, tree, acts)
	if _, ok := findRole(roles, 7, RoleInstrument); !ok {
		t.Errorf("expected knife to be Instrument: %+v", roles)
	}
}

// "He walked with her ."
func comitativeArcs() []deptree.Arc {
	return []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "nsubj"},
		{Dependent: 2, Head: 0, Label: "root"},
		{Dependent: 3, Head: 4, Label: "case"},
		{Dependent: 4, Head: 2, Label: "obl"},
	}
}

func TestMapRolesWithAnimateObjectIsComitative(t *testing.T) {
	tokens := mkTokens("He", "walked", "with", "her")
	lemmas := []string{"he", "walk", "with", "she"}
	tree := deptree.New(comitativeArcs(), len(tokens))
	acts := []Act{{VerbToken: 2, Lemma: "walk"}}

	roles := MapRoles(tokens, lemmas, tree, acts)
	if _, ok := findRole(roles, 4, RoleComitative); !ok {
		t.Errorf("expected her to be Comitative: %+v", roles)
	}
}

// "He bought a gift for her ."
func beneficiaryArcs() []deptree.Arc {
	return []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "nsubj"},
		{Dependent: 2, Head: 0, Label: "root"},
		{Dependent: 3, Head: 4, Label: "det"},
		{Dependent: 4, Head: 2, Label: "obj"},
		{Dependent: 5, Head: 6, Label: "case"},
		{Dependent: 6, Head: 2, Label: "obl"},
	}
}

func TestMapRolesForPhraseIsBeneficiary(t *testing.T) {
	tokens := mkTokens("He", "bought", "a", "gift", "for", "her")
	lemmas := []string{"he", "buy", "a", "gift", "for", "she"}
	tree := deptree.New(beneficiaryArcs(), len(tokens))
	acts := []Act{{VerbToken: 2, Lemma: "buy"}}

	roles := MapRoles(tokens, lemmas, tree, acts)
	if _, ok := findRole(roles, 6, RoleBeneficiary); !ok {
		t.Errorf("expected her to be Beneficiary: %+v", roles)
	}
}

func TestMapRolesConsolidatesAcrossMultipleActs(t *testing.T) {
	// Two independent clauses sharing the same subject token id would be
	// a different tree per sentence in practice; here we instead verify
	// that a single bearer/role pair realized by two different acts in
	// the same tree merges into one Role with both act ids.
	tokens := mkTokens("He", "left", "and", "returned")
	lemmas := []string{"he", "leave", "and", "return"}
	arcs := []deptree.Arc{
		{Dependent: 1, Head: 2, Label: "nsubj"},
		{Dependent: 2, Head: 0, Label: "root"},
		{Dependent: 3, Head: 4, Label: "cc"},
		{Dependent: 4, Head: 2, Label: "conj"},
		{Dependent: 1, Head: 4, Label: "nsubj"}, // shared subject: ChildrenOf lists token 1 under both verbs
	}
	tree := deptree.New(arcs, len(tokens))
	acts := []Act{{VerbToken: 2, Lemma: "leave"}, {VerbToken: 4, Lemma: "return"}}

	roles := MapRoles(tokens, lemmas, tree, acts)
	r, ok := findRole(roles, 1, RoleAgent)
	if !ok {
		t.Fatalf("expected agent role for bearer 1: %+v", roles)
	}
	if len(r.RealizedIn) != 2 || r.RealizedIn[0] != 2 || r.RealizedIn[1] != 4 {
		t.Errorf("RealizedIn = %v, want [2 4]", r.RealizedIn)
	}
}
