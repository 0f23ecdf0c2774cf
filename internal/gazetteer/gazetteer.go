// Package gazetteer implements gazetteer-based named-entity lookup
// (spec §4.9): exact canonical match, then exact alias match, then a
// normalized match (lowercased, abbreviations expanded, trailing period
// stripped), in that precedence order. Multiple gazetteers can be
// merged with first-write-wins semantics.
package gazetteer

import (
	"strings"
)

// Entry is one gazetteer record: a canonical surface form, its type,
// and any aliases it may also be referred to by.
type Entry struct {
	Canonical string
	Type      string
	Aliases   []string
}

// Gazetteer is a merged, indexed lookup table built from one or more
// Entry slices.
type Gazetteer struct {
	byCanonical  map[string]Entry
	byAlias      map[string]Entry
	byNormalized map[string]Entry
}

// New builds an empty Gazetteer.
func New() *Gazetteer {
	return &Gazetteer{
		byCanonical:  make(map[string]Entry),
		byAlias:      make(map[string]Entry),
		byNormalized: make(map[string]Entry),
	}
}

// Register adds entries to the gazetteer. If a canonical form or alias
// already exists, the earlier registration is kept (first-write-wins,
// spec §4.9) — callers register multiple domain/source gazetteers in
// priority order.
func (g *Gazetteer) Register(entries []Entry) {
	for _, e := range entries {
		if _, exists := g.byCanonical[e.Canonical]; !exists {
			g.byCanonical[e.Canonical] = e
		}
		norm := normalizeKey(e.Canonical)
		if _, exists := g.byNormalized[norm]; !exists {
			g.byNormalized[norm] = e
		}
		for _, alias := range e.Aliases {
			if _, exists := g.byAlias[alias]; !exists {
				g.byAlias[alias] = e
			}
			normAlias := normalizeKey(alias)
			if _, exists := g.byNormalized[normAlias]; !exists {
				g.byNormalized[normAlias] = e
			}
		}
	}
}

// MatchKind reports which precedence tier satisfied a lookup.
type MatchKind string

const (
	ExactCanonical MatchKind = "exact_canonical"
	ExactAlias     MatchKind = "exact_alias"
	Normalized     MatchKind = "normalized"
	NoMatch        MatchKind = "none"
)

// Lookup resolves surface against the gazetteer following the
// precedence order in spec §4.9.
func (g *Gazetteer) Lookup(surface string) (Entry, MatchKind) {
	if g == nil {
		return Entry{}, NoMatch
	}
	if e, ok := g.byCanonical[surface]; ok {
		return e, ExactCanonical
	}
	if e, ok := g.byAlias[surface]; ok {
		return e, ExactAlias
	}
	if e, ok := g.byNormalized[normalizeKey(surface)]; ok {
		return e, Normalized
	}
	return Entry{}, NoMatch
}

// abbreviationExpansions is a small fixed table of common written
// abbreviations expanded during normalized lookup (spec §4.9
// "abbreviation expansion").
var abbreviationExpansions = map[string]string{
	"corp":  "corporation",
	"co":    "company",
	"inc":   "incorporated",
	"ltd":   "limited",
	"dept":  "department",
	"univ":  "university",
	"assn":  "association",
	"intl":  "international",
	"natl":  "national",
	"st":    "street",
	"ave":   "avenue",
	"mt":    "mount",
	"dr":    "doctor",
	"mr":    "mister",
	"mrs":   "missus",
	"govt":  "government",
}

// normalizeKey lowercases surface, strips a trailing period, and
// expands any whole-token abbreviation it matches (spec §4.9).
func normalizeKey(surface string) string {
	s := strings.ToLower(strings.TrimSpace(surface))
	s = strings.TrimSuffix(s, ".")

	words := strings.Fields(s)
	for i, w := range words {
		trimmed := strings.TrimSuffix(w, ".")
		if expansion, ok := abbreviationExpansions[trimmed]; ok {
			words[i] = expansion
		}
	}
	return strings.Join(words, " ")
}
