package semparse

// BuildOptions is the option surface documented in spec §6. Zero value
// is not a usable default — call DefaultBuildOptions and override from
// there, mirroring the teacher's habit of constructor functions over
// bare struct literals for anything with non-zero defaults.
type BuildOptions struct {
	ExtractEntities   bool
	ExtractActs       bool
	DetectRoles       bool
	ExtractScarcity   bool
	ExtractQualities  bool
	ExtractDirectives bool
	CreateAggregates  bool

	GreedyNER        bool // auto-enabled per-sentence by the traffic cop regardless of this flag
	EnableTrafficCop bool

	DetectAmbiguity   bool
	PreserveAmbiguity bool
	PreserveThreshold float64
	MaxAlternatives   int

	UseTreeExtractors bool

	Verbose   bool
	Namespace string
	Context   string // optional caller-supplied context IRI component; "" means none

	// Debug, when true, populates BuildResult.Debug with the tag, parse
	// and total durations and per-sentence parser transition traces
	// (SPEC_FULL §11).
	Debug bool

	// Budget, when non-nil, caps node/referent/assertion counts and input
	// length (spec §5 "optional complexity budget").
	Budget *Budget
}

// Budget is the optional complexity budget from spec §5. A zero field
// means "no cap" for that dimension.
type Budget struct {
	MaxNodes      int
	MaxReferents  int
	MaxAssertions int
	MaxInputLen   int
	Truncate      bool // true: degrade to a truncated graph; false: return BudgetExceeded
}

// DefaultBuildOptions returns the option surface's documented defaults
// (spec §6).
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		ExtractEntities:   true,
		ExtractActs:       true,
		DetectRoles:       true,
		ExtractScarcity:   true,
		ExtractQualities:  true,
		ExtractDirectives: true,
		CreateAggregates:  true,

		GreedyNER:        false,
		EnableTrafficCop: true,

		DetectAmbiguity:   false,
		PreserveAmbiguity: false,
		PreserveThreshold: 0.7,
		MaxAlternatives:   3,

		UseTreeExtractors: false,

		Verbose:   false,
		Namespace: "inst",
	}
}
