package domainconfig

import (
	"context"
	"strings"
	"testing"

	"github.com/textgraph/semparse/internal/semlog"
)

func TestLookupTypeExactMatchWins(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{
		TypeSpecializations: map[string]map[string]string{
			"Artifact": {"gun": "Weapon", "handgun": "FirearmWeapon"},
		},
	}, "s1")

	got, ok := r.LookupType("Artifact", "gun")
	if !ok || got != "Weapon" {
		t.Errorf("LookupType(exact) = %q, %v, want Weapon, true", got, ok)
	}
}

func TestLookupTypeFallsBackToSubstring(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{
		TypeSpecializations: map[string]map[string]string{
			"Artifact": {"gun": "Weapon"},
		},
	}, "s1")

	got, ok := r.LookupType("Artifact", "handgun")
	if !ok || got != "Weapon" {
		t.Errorf("LookupType(substring) = %q, %v, want Weapon, true", got, ok)
	}
}

func TestLookupTypeNoMatch(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{TypeSpecializations: map[string]map[string]string{"Artifact": {"gun": "Weapon"}}}, "s1")

	if _, ok := r.LookupType("Artifact", "book"); ok {
		t.Errorf("expected no match for unrelated term")
	}
	if _, ok := r.LookupType("Quality", "gun"); ok {
		t.Errorf("expected no match for unknown base type")
	}
}

func TestLookupVerbSenseFallsBackToDefault(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{
		VerbSenseOverrides: map[string]map[string]string{
			"treat": {"occurrent": "TherapeuticAct", "default": "MedicalAct"},
		},
	}, "s1")

	if got, ok := r.LookupVerbSense("treat", "occurrent"); !ok || got != "TherapeuticAct" {
		t.Errorf("LookupVerbSense(exact category) = %q, %v", got, ok)
	}
	if got, ok := r.LookupVerbSense("treat", "continuant"); !ok || got != "MedicalAct" {
		t.Errorf("LookupVerbSense(default fallback) = %q, %v, want MedicalAct, true", got, ok)
	}
	if _, ok := r.LookupVerbSense("unknown_verb", "occurrent"); ok {
		t.Errorf("expected no match for unregistered verb")
	}
}

func TestLookupProcessRootExactThenSubstring(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{
		ProcessRootSpecializations: map[string]string{
			"audit": "ComplianceReviewProcess",
		},
	}, "s1")

	if got, ok := r.LookupProcessRoot("audit"); !ok || got != "ComplianceReviewProcess" {
		t.Errorf("exact = %q, %v", got, ok)
	}
	if got, ok := r.LookupProcessRoot("financial_audit"); !ok || got != "ComplianceReviewProcess" {
		t.Errorf("substring = %q, %v", got, ok)
	}
}

func TestMergeDetectsConflictAndLastWriterWins(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{TypeSpecializations: map[string]map[string]string{"Artifact": {"gun": "Weapon"}}}, "s1")
	conflicts := r.Merge(Overlay{TypeSpecializations: map[string]map[string]string{"Artifact": {"gun": "Firearm"}}}, "s2")

	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d: %+v", len(conflicts), conflicts)
	}
	c := conflicts[0]
	if c.Source != "s2" || c.LosingValue != "Weapon" || c.WinningValue != "Firearm" {
		t.Errorf("conflict = %+v", c)
	}
	got, _ := r.LookupType("Artifact", "gun")
	if got != "Firearm" {
		t.Errorf("expected last-writer-wins value Firearm, got %q", got)
	}
}

func TestMergeSameValueIsNotAConflict(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{TypeSpecializations: map[string]map[string]string{"Artifact": {"gun": "Weapon"}}}, "s1")
	conflicts := r.Merge(Overlay{TypeSpecializations: map[string]map[string]string{"Artifact": {"gun": "Weapon"}}}, "s2")
	if len(conflicts) != 0 {
		t.Errorf("expected no conflict when value is unchanged, got %+v", conflicts)
	}
}

func TestClearConfigsReturnsToOntologyBaseMode(t *testing.T) {
	r := NewRegistry()
	r.Merge(Overlay{TypeSpecializations: map[string]map[string]string{"Artifact": {"gun": "Weapon"}}}, "s1")
	r.ClearConfigs()
	if _, ok := r.LookupType("Artifact", "gun"); ok {
		t.Errorf("expected no match after ClearConfigs")
	}
}

func TestLoadAllMergesJSONAndYAMLSources(t *testing.T) {
	jsonSrc := strings.NewReader(`{"typeSpecializations":{"Artifact":{"gun":"Weapon"}}}`)
	yamlSrc := strings.NewReader("verbSenseOverrides:\n  treat:\n    default: MedicalAct\n")

	registry, conflicts, err := LoadAll(context.Background(), semlog.Nop(), []Source{
		{Name: "base.json", Format: FormatJSON, Reader: jsonSrc},
		{Name: "overlay.yaml", Format: FormatYAML, Reader: yamlSrc},
	})
	if err != nil {
		t.Fatalf("LoadAll error: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("expected no conflicts, got %+v", conflicts)
	}
	if got, ok := registry.LookupType("Artifact", "gun"); !ok || got != "Weapon" {
		t.Errorf("LookupType after LoadAll = %q, %v", got, ok)
	}
	if got, ok := registry.LookupVerbSense("treat", "anything"); !ok || got != "MedicalAct" {
		t.Errorf("LookupVerbSense after LoadAll = %q, %v", got, ok)
	}
}

func TestLoadAllRejectsMalformedSource(t *testing.T) {
	bad := strings.NewReader(`{not valid json`)
	_, _, err := LoadAll(context.Background(), semlog.Nop(), []Source{
		{Name: "bad.json", Format: FormatJSON, Reader: bad},
	})
	if err == nil {
		t.Fatalf("expected error for malformed source")
	}
}

func TestLoadAllRejectsEmptySources(t *testing.T) {
	_, _, err := LoadAll(context.Background(), semlog.Nop(), nil)
	if err == nil {
		t.Fatalf("expected error for empty sources")
	}
}
