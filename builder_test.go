package semparse

import "testing"

func TestBuildRejectsEmptyInput(t *testing.T) {
	b := NewBuilder()
	result, err := b.Build("   ", DefaultBuildOptions())
	if err == nil {
		t.Fatal("expected an error for blank input")
	}
	be, ok := err.(BuildError)
	if !ok {
		t.Fatalf("expected BuildError, got %T", err)
	}
	if be.Kind != KindInputValidation {
		t.Errorf("expected KindInputValidation, got %q", be.Kind)
	}
	if result == nil || result.Graph == nil {
		t.Error("expected a non-nil empty graph alongside the error")
	}
}

func TestBuildRejectsMissingModels(t *testing.T) {
	b := NewBuilder()
	_, err := b.Build("Alice sent the report.", DefaultBuildOptions())
	if err == nil {
		t.Fatal("expected an error when no models are loaded")
	}
	be, ok := err.(BuildError)
	if !ok {
		t.Fatalf("expected BuildError, got %T", err)
	}
	if be.Kind != KindModelMissing {
		t.Errorf("expected KindModelMissing, got %q", be.Kind)
	}
}

func TestBuildRejectsInputOverBudget(t *testing.T) {
	b := NewBuilder()
	opts := DefaultBuildOptions()
	opts.Budget = &Budget{MaxInputLen: 5}
	_, err := b.Build("this sentence is far longer than five characters", opts)
	if err == nil {
		t.Fatal("expected an error for input exceeding the configured budget")
	}
	be, ok := err.(BuildError)
	if !ok || be.Kind != KindInputValidation {
		t.Fatalf("expected KindInputValidation, got %v", err)
	}
}

func TestDefaultBuildOptionsEnablesCoreExtraction(t *testing.T) {
	opts := DefaultBuildOptions()
	if !opts.ExtractEntities || !opts.ExtractActs || !opts.DetectRoles {
		t.Error("expected entities/acts/roles extraction on by default")
	}
	if opts.Namespace != "inst" {
		t.Errorf("expected default namespace %q, got %q", "inst", opts.Namespace)
	}
	if opts.DetectAmbiguity {
		t.Error("expected ambiguity detection off by default")
	}
}

func TestNewBuilderHasNoModelsLoaded(t *testing.T) {
	b := NewBuilder()
	if b.posModel != nil || b.depModel != nil {
		t.Error("expected a fresh Builder to have no models loaded")
	}
	if b.gazetteer == nil {
		t.Error("expected a fresh Builder to have a non-nil empty gazetteer")
	}
}
