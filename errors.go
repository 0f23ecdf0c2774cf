package semparse

import "fmt"

// BuildError is the typed error every failure mode in §7 surfaces as.
// Kind is one of the constants below; Stage names the pipeline stage
// active when the error occurred ("validate" for InputValidation,
// "loadModels" for ModelMissing, "build" for BudgetExceeded).
type BuildError struct {
	Kind    string
	Stage   string
	Message string
}

func (e BuildError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("semparse: %s at stage %q: %s", e.Kind, e.Stage, e.Message)
	}
	return fmt.Sprintf("semparse: %s: %s", e.Kind, e.Message)
}

// Error kinds (spec §7).
const (
	KindInputValidation = "InputValidation"
	KindModelMissing    = "ModelMissing"
	KindStageFailure    = "StageFailure"
	KindBudgetExceeded  = "BudgetExceeded"
	KindConfigConflict  = "ConfigConflict"
)
