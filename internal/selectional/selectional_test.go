package selectional

import "testing"

func TestCategoryForLexiconLookup(t *testing.T) {
	if got := CategoryFor("student"); got != Animate {
		t.Errorf("CategoryFor(student) = %v, want Animate", got)
	}
	if got := CategoryFor("committee"); got != Organization {
		t.Errorf("CategoryFor(committee) = %v, want Organization", got)
	}
}

func TestCategoryForMorphologicalFallback(t *testing.T) {
	if got := CategoryFor("teacher"); got != Animate {
		t.Errorf("CategoryFor(teacher) via lexicon = %v, want Animate", got)
	}
	if got := CategoryFor("inspector"); got != Animate {
		t.Errorf("CategoryFor(inspector) via -or suffix = %v, want Animate", got)
	}
	if got := CategoryFor("resignation"); got != Abstract {
		t.Errorf("CategoryFor(resignation) via -tion suffix = %v, want Abstract", got)
	}
	if got := CategoryFor("kindness"); got != Abstract {
		t.Errorf("CategoryFor(kindness) via -ness suffix = %v, want Abstract", got)
	}
}

func TestCategoryForDefaultsToInanimate(t *testing.T) {
	if got := CategoryFor("rock"); got != Inanimate {
		t.Errorf("CategoryFor(rock) = %v, want Inanimate", got)
	}
}

func TestClassForVerbKnownAndUnknown(t *testing.T) {
	vc, ok := ClassForVerb("give")
	if !ok || vc.Name != "transfer" {
		t.Errorf("ClassForVerb(give) = (%+v, %v), want transfer class", vc, ok)
	}
	if _, ok := ClassForVerb("frobnicate"); ok {
		t.Errorf("expected no match for an unknown verb")
	}
}

func TestCheckSubjectViolation(t *testing.T) {
	vc, _ := ClassForVerb("think")
	_, ok := CheckSubject(vc, "rock")
	if ok {
		t.Fatal("expected a violation for an inanimate subject of a mental verb")
	}
	v, _ := CheckSubject(vc, "rock")
	if v.Kind != AgentViolation {
		t.Errorf("violation kind = %v, want AgentViolation", v.Kind)
	}
	if v.Observed != Inanimate {
		t.Errorf("observed category = %v, want Inanimate", v.Observed)
	}
}

func TestCheckSubjectNoViolation(t *testing.T) {
	vc, _ := ClassForVerb("think")
	_, ok := CheckSubject(vc, "student")
	if !ok {
		t.Errorf("expected no violation for an animate subject of a mental verb")
	}
}

func TestCheckObjectViolation(t *testing.T) {
	vc, _ := ClassForVerb("hire")
	v, ok := CheckObject(vc, "rock")
	if ok {
		t.Fatal("expected a violation for hiring an inanimate object")
	}
	if v.Kind != PatientViolation {
		t.Errorf("violation kind = %v, want PatientViolation", v.Kind)
	}
}
