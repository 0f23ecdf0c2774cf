// Package selectional implements the Selectional Preferences lexicon
// (spec §4.16): verb classes specifying subject/object category
// requirements and an ontology type, entity-category assignment by
// lexicon plus morphological fallback, and the violation check used to
// feed ambiguity detection.
package selectional

import "strings"

// Category is a coarse entity category used to check a verb's
// selectional restrictions.
type Category string

const (
	Animate      Category = "animate"
	Organization Category = "organization"
	Material     Category = "material"
	Abstract     Category = "abstract"
	Proposition  Category = "proposition"
	Inanimate    Category = "inanimate"
)

// VerbClass describes one semantic class of verbs: the subject/object
// categories it expects and the ontology type it denotes (spec §4.16).
type VerbClass struct {
	Name              string
	SubjectCategories map[Category]bool
	ObjectCategories   map[Category]bool
	OntologyType      string
}

func cats(cs ...Category) map[Category]bool {
	m := make(map[Category]bool, len(cs))
	for _, c := range cs {
		m[c] = true
	}
	return m
}

// verbClasses is the fixed lexicon of verb classes (spec §4.16 names:
// mental, physical, communication, transfer, employment, governance,
// creation, perception, stative).
var verbClasses = map[string]VerbClass{
	"mental": {
		Name:              "mental",
		SubjectCategories: cats(Animate),
		ObjectCategories:  cats(Proposition, Abstract, Material, Organization, Animate),
		OntologyType:      "MentalAct",
	},
	"physical": {
		Name:              "physical",
		SubjectCategories: cats(Animate),
		ObjectCategories:  cats(Material),
		OntologyType:      "IntentionalAct",
	},
	"communication": {
		Name:              "communication",
		SubjectCategories: cats(Animate, Organization),
		ObjectCategories:  cats(Proposition, Abstract, Animate, Organization),
		OntologyType:      "CommunicationAct",
	},
	"transfer": {
		Name:              "transfer",
		SubjectCategories: cats(Animate, Organization),
		ObjectCategories:  cats(Material, Abstract, Proposition),
		OntologyType:      "TransferAct",
	},
	"employment": {
		Name:              "employment",
		SubjectCategories: cats(Animate, Organization),
		ObjectCategories:  cats(Animate, Organization),
		OntologyType:      "EmploymentAct",
	},
	"governance": {
		Name:              "governance",
		SubjectCategories: cats(Organization, Animate),
		ObjectCategories:  cats(Animate, Organization, Proposition, Abstract),
		OntologyType:      "GovernanceAct",
	},
	"creation": {
		Name:              "creation",
		SubjectCategories: cats(Animate, Organization),
		ObjectCategories:  cats(Material, Abstract, Proposition),
		OntologyType:      "CreationAct",
	},
	"perception": {
		Name:              "perception",
		SubjectCategories: cats(Animate),
		ObjectCategories:  cats(Material, Animate, Organization, Abstract, Proposition),
		OntologyType:      "PerceptionAct",
	},
	"stative": {
		Name:              "stative",
		SubjectCategories: cats(Animate, Organization, Material, Abstract, Inanimate),
		ObjectCategories:  cats(Animate, Organization, Material, Abstract, Inanimate, Proposition),
		OntologyType:      "StructuralAssertion",
	},
}

// verbToClass maps common verb lemmas to the VerbClass name they
// belong to.
var verbToClass = map[string]string{
	"think": "mental", "believe": "mental", "know": "mental", "consider": "mental",
	"doubt": "mental", "understand": "mental", "decide": "mental",
	"carry": "physical", "build": "physical", "move": "physical", "lift": "physical",
	"push": "physical", "break": "physical", "hold": "physical",
	"say": "communication", "tell": "communication", "announce": "communication",
	"report": "communication", "state": "communication", "ask": "communication",
	"give": "transfer", "send": "transfer", "deliver": "transfer", "transfer": "transfer",
	"award": "transfer", "grant": "transfer",
	"hire": "employment", "fire": "employment", "employ": "employment", "promote": "employment",
	"govern": "governance", "regulate": "governance", "manage": "governance", "oversee": "governance",
	"create": "creation", "build_creation": "creation", "write": "creation", "design": "creation",
	"produce": "creation", "compose": "creation",
	"see": "perception", "observe": "perception", "watch": "perception", "notice": "perception",
	"hear": "perception",
	"be": "stative", "have": "stative", "own": "stative", "belong": "stative",
}

// ClassForVerb returns the VerbClass a verb lemma belongs to, and
// whether it matched a known verb.
func ClassForVerb(lemma string) (VerbClass, bool) {
	name, ok := verbToClass[strings.ToLower(lemma)]
	if !ok {
		return VerbClass{}, false
	}
	vc := verbClasses[name]
	return vc, true
}

// personLexicon, orgLexicon, materialLexicon, abstractSuffixes ground
// the category-assignment lexicon (spec §4.16 "Entity categories ...
// determined by lexicon plus morphological fallbacks").
var personLexicon = map[string]bool{
	"person": true, "man": true, "woman": true, "boy": true, "girl": true,
	"doctor": true, "teacher": true, "student": true, "patient": true,
	"employee": true, "manager": true, "officer": true, "director": true,
	"he": true, "she": true, "they": true, "i": true, "we": true, "you": true,
}

var organizationLexicon = map[string]bool{
	"company": true, "corporation": true, "committee": true, "board": true,
	"department": true, "agency": true, "government": true, "university": true,
	"organization": true, "team": true, "firm": true,
}

var propositionLexicon = map[string]bool{
	"fact": true, "claim": true, "idea": true, "belief": true, "statement": true,
	"argument": true, "proposal": true, "theory": true,
}

// CategoryFor classifies a noun lemma into a Category. Lexicon lookups
// take precedence; failing those, the agentive suffixes -er/-or map to
// Animate and the nominalizing suffixes -tion/-ment/-ness/-ity map to
// Abstract (spec §4.16); anything else defaults to Inanimate.
func CategoryFor(lemma string) Category {
	l := strings.ToLower(lemma)
	switch {
	case personLexicon[l]:
		return Animate
	case organizationLexicon[l]:
		return Organization
	case propositionLexicon[l]:
		return Proposition
	}

	switch {
	case strings.HasSuffix(l, "er") || strings.HasSuffix(l, "or"):
		return Animate
	case strings.HasSuffix(l, "tion") || strings.HasSuffix(l, "ment") ||
		strings.HasSuffix(l, "ness") || strings.HasSuffix(l, "ity"):
		return Abstract
	}

	return Inanimate
}

// ViolationKind distinguishes subject-side from object-side violations.
type ViolationKind string

const (
	AgentViolation   ViolationKind = "agent_violation"
	PatientViolation ViolationKind = "patient_violation"
)

// Violation is a single selectional-preference mismatch (spec §4.16).
type Violation struct {
	Kind     ViolationKind
	Signal   string
	Required map[Category]bool
	Observed Category
}

// CheckSubject checks whether subjectLemma's category satisfies vc's
// subject restriction, returning a Violation (ok=false) if not.
func CheckSubject(vc VerbClass, subjectLemma string) (Violation, bool) {
	observed := CategoryFor(subjectLemma)
	if vc.SubjectCategories[observed] {
		return Violation{}, true
	}
	return Violation{
		Kind:     AgentViolation,
		Signal:   "subject category " + string(observed) + " not in required set for verb class " + vc.Name,
		Required: vc.SubjectCategories,
		Observed: observed,
	}, false
}

// CheckObject checks whether objectLemma's category satisfies vc's
// object restriction, returning a Violation (ok=false) if not.
func CheckObject(vc VerbClass, objectLemma string) (Violation, bool) {
	observed := CategoryFor(objectLemma)
	if vc.ObjectCategories[observed] {
		return Violation{}, true
	}
	return Violation{
		Kind:     PatientViolation,
		Signal:   "object category " + string(observed) + " not in required set for verb class " + vc.Name,
		Required: vc.ObjectCategories,
		Observed: observed,
	}, false
}
