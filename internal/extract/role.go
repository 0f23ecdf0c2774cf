package extract

import (
	"sort"
	"strings"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/selectional"
	"github.com/textgraph/semparse/internal/token"
)

// Role type tags (spec §4.15).
const (
	RoleAgent       = "AgentRole"
	RolePatient     = "PatientRole"
	RoleRecipient   = "RecipientRole"
	RoleBeneficiary = "Beneficiary"
	RoleInstrument  = "Instrument"
	RoleComitative  = "Comitative"
	RoleLocation    = "Location"
	RoleSource      = "Source"
	RoleDestination = "Destination"
	RoleTopic       = "Topic"
	RoleOpponent    = "Opponent"
	RoleOblique     = "ObliqueRole"
)

// prepositionRoleTypes maps an oblique-introducing preposition to its
// role subtype (spec §4.15's "preposition-subtyped ObliqueRole" list).
// "with" is resolved separately since it depends on the object's
// animacy (Instrument vs. Comitative).
var prepositionRoleTypes = map[string]string{
	"for":       RoleBeneficiary,
	"in":        RoleLocation,
	"at":        RoleLocation,
	"on":        RoleLocation,
	"from":      RoleSource,
	"to":        RoleDestination,
	"into":      RoleDestination,
	"toward":    RoleDestination,
	"towards":   RoleDestination,
	"about":     RoleTopic,
	"regarding": RoleTopic,
	"against":   RoleOpponent,
}

// Role is one bearer/role-type pair, consolidated across every act that
// realizes it (spec §4.15: "role consolidation by (bearer, role-type)
// with a realized_in set").
type Role struct {
	Bearer     int
	RoleType   string
	RealizedIn []int // verb token ids, sorted ascending, deduped
}

// MapRoles derives Role nodes from every Act's nominal-argument
// children, including coordinated-conjunct inheritance: a conjunct of a
// nominal argument inherits that argument's role type for the same act
// (spec §4.15).
func MapRoles(tokens []token.Token, lemmas []string, tree *deptree.DepTree, acts []Act) []Role {
	type key struct {
		bearer   int
		roleType string
	}
	consolidated := make(map[key]map[int]bool)

	record := func(bearer int, roleType string, act int) {
		if roleType == "" {
			return
		}
		k := key{bearer, roleType}
		if consolidated[k] == nil {
			consolidated[k] = make(map[int]bool)
		}
		consolidated[k][act] = true
	}

	for _, act := range acts {
		for _, a := range tree.ChildrenOf(act.VerbToken) {
			roleType := roleTypeFor(a.Label, act, tree, lemmas, a.Dependent, tokens)
			if roleType == "" {
				continue
			}
			record(a.Dependent, roleType, act.VerbToken)
			for _, conj := range tree.ChildrenWithLabel(a.Dependent, "conj") {
				record(conj.Dependent, roleType, act.VerbToken)
			}
		}
	}

	roles := make([]Role, 0, len(consolidated))
	for k, actSet := range consolidated {
		ids := make([]int, 0, len(actSet))
		for a := range actSet {
			ids = append(ids, a)
		}
		sort.Ints(ids)
		roles = append(roles, Role{Bearer: k.bearer, RoleType: k.roleType, RealizedIn: ids})
	}
	sort.Slice(roles, func(i, j int) bool {
		if roles[i].Bearer != roles[j].Bearer {
			return roles[i].Bearer < roles[j].Bearer
		}
		return roles[i].RoleType < roles[j].RoleType
	})
	return roles
}

// roleTypeFor classifies a single nominal-argument arc's role type
// (spec §4.15).
func roleTypeFor(label string, act Act, tree *deptree.DepTree, lemmas []string, dependent int, tokens []token.Token) string {
	switch label {
	case "nsubj":
		return RoleAgent
	case "nsubj:pass":
		return RolePatient
	case "obj":
		return RolePatient
	case "iobj":
		return RoleRecipient
	case "obl":
		return obliqueRoleType(act, tree, lemmas, dependent, tokens)
	}
	return ""
}

// obliqueRoleType resolves an obl argument's role by its governing
// preposition: a passive "by"-phrase is the demoted agent; "with" is
// Instrument unless its object is animate, in which case it's
// Comitative; everything else follows prepositionRoleTypes, defaulting
// to ObliqueRole.
func obliqueRoleType(act Act, tree *deptree.DepTree, lemmas []string, dependent int, tokens []token.Token) string {
	prep := prepositionOf(tree, dependent, tokens)
	if prep == "by" && act.Passive {
		return RoleAgent
	}
	if prep == "with" {
		if selectional.CategoryFor(headLemmaOf(lemmas, dependent)) == selectional.Animate {
			return RoleComitative
		}
		return RoleInstrument
	}
	if t, ok := prepositionRoleTypes[strings.ToLower(prep)]; ok {
		return t
	}
	return RoleOblique
}
