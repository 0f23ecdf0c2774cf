package semgraph

// Node is the discriminated-union interface every graph node kind
// implements: a stable IRI, its BFO/CCO type tags, and its own field
// set flattened for serialization (spec's "tagged variants per node
// kind with explicit fields" redesign, replacing the source's ad-hoc
// property bags).
type Node interface {
	ID() string
	Types() []string
	Fields() map[string]any
}

// Base is embedded in every concrete node type to provide the IRI and
// type-tag fields common to all of them.
type Base struct {
	IRIValue    string
	TypeValues  []string
}

func (b Base) ID() string      { return b.IRIValue }
func (b Base) Types() []string { return b.TypeValues }

// AmbiguityFlags is attached to any node surfaced by ambiguity
// detection (spec §4.17 step 13): hasAmbiguity plus the specific signal
// kinds observed on this node.
type AmbiguityFlags struct {
	HasAmbiguity       bool
	SelectionalMismatch bool
	ScopeAmbiguous     bool
	Metonymy           bool
	Notes              []string
}

// DiscourseReferent is a Tier-1 linguistic mention (spec §3).
type DiscourseReferent struct {
	Base
	Text               string
	CharStart, CharEnd int
	ReferentialStatus  string // definite | indefinite | anaphoric | generic
	IsAbout            string // Tier-2 RealWorldEntity IRI
}

func (d DiscourseReferent) Fields() map[string]any {
	return map[string]any{
		"text":              d.Text,
		"charStart":         d.CharStart,
		"charEnd":           d.CharEnd,
		"referentialStatus": d.ReferentialStatus,
		"is_about":          d.IsAbout,
	}
}

// RealWorldEntity is a Tier-2 denoted individual (spec §3).
type RealWorldEntity struct {
	Base
	DenotedType            string
	Aliases                []string
	IsAggregate            bool
	Members                []string
	IntroducingPreposition string
	ResolutionProvenance   string // exact | alias | normalized | none
	ParseConfidence        float64
	Ambiguity              *AmbiguityFlags

	// TemporalRegion is set when a TemporalRegion entity in the same
	// sentence occupies this entity's temporal extent (spec §4.17 step
	// 12 "occupies_temporal_region"); "" means none.
	TemporalRegion string

	// IsConcretizedBy is the owning build's IBE IRI (spec §4.17 step 10).
	IsConcretizedBy string
}

func (e RealWorldEntity) Fields() map[string]any {
	f := map[string]any{
		"denotedType":          e.DenotedType,
		"aliases":              e.Aliases,
		"isAggregate":          e.IsAggregate,
		"members":              e.Members,
		"resolutionProvenance": e.ResolutionProvenance,
		"parseConfidence":      e.ParseConfidence,
	}
	if e.IntroducingPreposition != "" {
		f["introducingPreposition"] = e.IntroducingPreposition
	}
	if e.TemporalRegion != "" {
		f["occupies_temporal_region"] = e.TemporalRegion
	}
	if e.IsConcretizedBy != "" {
		f["is_concretized_by"] = e.IsConcretizedBy
	}
	addAmbiguity(f, e.Ambiguity)
	return f
}

// ComplexDesignator is a long capitalized span treated as one
// proper-name entity (spec §3, §4.10).
type ComplexDesignator struct {
	Base
	FullName          string
	DenotedType       string
	ComponentTokenIDs []int
}

func (c ComplexDesignator) Fields() map[string]any {
	return map[string]any{
		"fullName":          c.FullName,
		"denotedType":       c.DenotedType,
		"componentTokenIds": c.ComponentTokenIDs,
	}
}

// Act is an event predication (spec §3, §4.14).
type Act struct {
	Base
	Lemma                 string
	Surface               string
	Passive               bool
	Negated               bool
	Copular               bool
	Control               bool
	ControlVerb           string
	Modality              string // obligation | obligation_weak | permission | prohibition | intention | ""
	ActualityStatus       string // Actual | Prescribed | Hypothetical
	Agent, Patient, Recipient string
	Participants          []string
	SourceSpanStart       int
	SourceSpanEnd         int
	ParseConfidence       float64
	Ambiguity             *AmbiguityFlags

	// IsAbout and SupportsInference are set only for inanimate-agent
	// inference acts (spec §4.14): the node's own Types() carries
	// InformationContentEntity instead of IntentionalAct in that case, and
	// Agent/Patient are left unset in favor of these two.
	IsAbout           string
	SupportsInference string

	// IsConcretizedBy is the owning build's IBE IRI (spec §4.17 step 10).
	IsConcretizedBy string
}

func (a Act) Fields() map[string]any {
	f := map[string]any{
		"lemma":           a.Lemma,
		"surface":         a.Surface,
		"passive":         a.Passive,
		"negated":         a.Negated,
		"copular":         a.Copular,
		"control":         a.Control,
		"modality":        a.Modality,
		"actualityStatus": a.ActualityStatus,
		"participants":    a.Participants,
		"sourceSpanStart": a.SourceSpanStart,
		"sourceSpanEnd":   a.SourceSpanEnd,
		"parseConfidence": a.ParseConfidence,
	}
	if a.ControlVerb != "" {
		f["controlVerb"] = a.ControlVerb
	}
	if a.Agent != "" {
		f["agent"] = a.Agent
	}
	if a.Patient != "" {
		f["patient"] = a.Patient
	}
	if a.Recipient != "" {
		f["recipient"] = a.Recipient
	}
	if a.IsAbout != "" {
		f["is_about"] = a.IsAbout
	}
	if a.SupportsInference != "" {
		f["supports_inference"] = a.SupportsInference
	}
	if a.IsConcretizedBy != "" {
		f["is_concretized_by"] = a.IsConcretizedBy
	}
	addAmbiguity(f, a.Ambiguity)
	return f
}

// StructuralAssertion is a stative relation between entities with no
// agent/patient role (spec §3, invariant I5).
type StructuralAssertion struct {
	Base
	Subject         string
	Objects         []string
	AssertsRelation string
	Negated         bool

	// IsConcretizedBy is the owning build's IBE IRI (spec §4.17 step 10).
	IsConcretizedBy string
}

func (s StructuralAssertion) Fields() map[string]any {
	f := map[string]any{
		"subject":         s.Subject,
		"objects":         s.Objects,
		"assertsRelation": s.AssertsRelation,
		"negated":         s.Negated,
	}
	if s.IsConcretizedBy != "" {
		f["is_concretized_by"] = s.IsConcretizedBy
	}
	return f
}

// Role is a semantic role a bearer plays in one or more acts (spec §3).
type Role struct {
	Base
	RoleType          string
	Bearer            string
	RealizedIn        []string // Actual acts only (invariant I7)
	WouldBeRealizedIn []string // non-Actual acts
	UDLabel           string
	Preposition       string
	ParseConfidence   float64
}

func (r Role) Fields() map[string]any {
	f := map[string]any{
		"roleType":        r.RoleType,
		"bearer":          r.Bearer,
		"udLabel":         r.UDLabel,
		"parseConfidence": r.ParseConfidence,
	}
	if len(r.RealizedIn) > 0 {
		f["realized_in"] = r.RealizedIn
	}
	if len(r.WouldBeRealizedIn) > 0 {
		f["would_be_realized_in"] = r.WouldBeRealizedIn
	}
	if r.Preposition != "" {
		f["preposition"] = r.Preposition
	}
	return f
}

// Quality is a BFO Quality inhering in a bearer entity (spec §3).
type Quality struct {
	Base
	Text      string
	InheresIn string
}

func (q Quality) Fields() map[string]any {
	return map[string]any{
		"text":       q.Text,
		"inheres_in": q.InheresIn,
	}
}

// DirectiveContent carries a modal marker's obligation/permission text,
// linked to the act it governs (spec §4.17 step 7).
type DirectiveContent struct {
	Base
	Text       string
	Prescribes string
}

func (d DirectiveContent) Fields() map[string]any {
	return map[string]any{
		"text":       d.Text,
		"prescribes": d.Prescribes,
	}
}

// IBE is the Information Bearing Entity: one per build, carrying the
// literal input text (spec §3).
type IBE struct {
	Base
	Text       string
	CharCount  int
	WordCount  int
	ReceivedAt string // RFC3339
}

func (i IBE) Fields() map[string]any {
	return map[string]any{
		"text":       i.Text,
		"charCount":  i.CharCount,
		"wordCount":  i.WordCount,
		"receivedAt": i.ReceivedAt,
	}
}

// ParserAgent is a versioned singleton named individual (spec §3).
type ParserAgent struct {
	Base
	Version string
}

func (p ParserAgent) Fields() map[string]any {
	return map[string]any{"version": p.Version}
}

// ParsingAct is the provenance act linking the IBE, the ParserAgent,
// and every ICE node the build produced (spec §3, invariants I5/I8).
type ParsingAct struct {
	Base
	Input           string
	Agent           string
	Outputs         []string
	ActualityStatus string
}

func (p ParsingAct) Fields() map[string]any {
	return map[string]any{
		"input":           p.Input,
		"agent":           p.Agent,
		"outputs":         p.Outputs,
		"actualityStatus": p.ActualityStatus,
	}
}

func addAmbiguity(f map[string]any, a *AmbiguityFlags) {
	if a == nil || !a.HasAmbiguity {
		return
	}
	f["hasAmbiguity"] = true
	if a.SelectionalMismatch {
		f["selectionalMismatch"] = true
	}
	if a.ScopeAmbiguous {
		f["scopeAmbiguous"] = true
	}
	if a.Metonymy {
		f["metonymy"] = true
	}
	if len(a.Notes) > 0 {
		f["ambiguityNotes"] = a.Notes
	}
}
