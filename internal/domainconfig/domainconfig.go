// Package domainconfig implements the Domain Config Loader (spec
// §4.18): an additive registry of domain overlays on top of the
// ontology-base type/sense assignments the rest of the pipeline uses by
// default. Three overlay kinds are supported: per-BFO-base-type term
// specializations, per-verb sense overrides keyed on object category,
// and per-term process-root-word specializations. Type and process-root
// lookups try an exact term match, then substring containment; verb
// sense lookups try the exact object category, then a "default" entry.
package domainconfig

import "sort"

// Overlay is one loaded config source's contribution to the registry,
// prior to merging (spec §4.18).
type Overlay struct {
	TypeSpecializations        map[string]map[string]string `json:"typeSpecializations" yaml:"typeSpecializations"`
	VerbSenseOverrides         map[string]map[string]string `json:"verbSenseOverrides" yaml:"verbSenseOverrides"`
	ProcessRootSpecializations map[string]string `json:"processRootSpecializations" yaml:"processRootSpecializations"`
}

// ConfigConflict records a term that a later-loaded overlay redefined;
// spec §4.18 treats this as a warning, not a failure (last-loader-wins).
type ConfigConflict struct {
	Domain      string // "typeSpecialization", "verbSense", or "processRoot"
	Key         string // the term/verb/baseType key that collided
	Source      string // the source name that caused the conflict (the winner)
	LosingValue string
	WinningValue string
}

// Registry is the merged, queryable result of loading one or more
// Overlays. The zero value (via NewRegistry) is "ontology-base mode":
// every lookup misses and callers fall back to their default typing.
type Registry struct {
	typeSpecializations        map[string]map[string]string
	verbSenseOverrides         map[string]map[string]string
	processRootSpecializations map[string]string
}

// NewRegistry returns an empty registry in ontology-base mode.
func NewRegistry() *Registry {
	return &Registry{
		typeSpecializations:        make(map[string]map[string]string),
		verbSenseOverrides:         make(map[string]map[string]string),
		processRootSpecializations: make(map[string]string),
	}
}

// ClearConfigs discards every loaded overlay, returning the registry to
// ontology-base mode (spec §4.18).
func (r *Registry) ClearConfigs() {
	r.typeSpecializations = make(map[string]map[string]string)
	r.verbSenseOverrides = make(map[string]map[string]string)
	r.processRootSpecializations = make(map[string]string)
}

// Merge folds overlay into the registry, last-writer-wins on any key
// already present, and returns the conflicts it produced (sourceName
// identifies the overlay for the conflict log; Merge itself logs
// nothing — LoadAll passes the result to logConflicts, and
// Builder.LoadDomainConfig logs each conflict itself).
func (r *Registry) Merge(overlay Overlay, sourceName string) []ConfigConflict {
	var conflicts []ConfigConflict

	for baseType, terms := range overlay.TypeSpecializations {
		bucket, ok := r.typeSpecializations[baseType]
		if !ok {
			bucket = make(map[string]string)
			r.typeSpecializations[baseType] = bucket
		}
		for term, specialized := range terms {
			if existing, exists := bucket[term]; exists && existing != specialized {
				conflicts = append(conflicts, ConfigConflict{
					Domain: "typeSpecialization", Key: baseType + ":" + term, Source: sourceName,
					LosingValue: existing, WinningValue: specialized,
				})
			}
			bucket[term] = specialized
		}
	}

	for verb, senses := range overlay.VerbSenseOverrides {
		bucket, ok := r.verbSenseOverrides[verb]
		if !ok {
			bucket = make(map[string]string)
			r.verbSenseOverrides[verb] = bucket
		}
		for category, ontologyType := range senses {
			if existing, exists := bucket[category]; exists && existing != ontologyType {
				conflicts = append(conflicts, ConfigConflict{
					Domain: "verbSense", Key: verb + ":" + category, Source: sourceName,
					LosingValue: existing, WinningValue: ontologyType,
				})
			}
			bucket[category] = ontologyType
		}
	}

	for term, root := range overlay.ProcessRootSpecializations {
		if existing, exists := r.processRootSpecializations[term]; exists && existing != root {
			conflicts = append(conflicts, ConfigConflict{
				Domain: "processRoot", Key: term, Source: sourceName,
				LosingValue: existing, WinningValue: root,
			})
		}
		r.processRootSpecializations[term] = root
	}

	return conflicts
}

// LookupType resolves baseType/term to a specialized type, trying an
// exact term match first, then the first (alphabetically, for
// determinism) stored term that is a substring of term.
func (r *Registry) LookupType(baseType, term string) (string, bool) {
	bucket, ok := r.typeSpecializations[baseType]
	if !ok {
		return "", false
	}
	return lookupExactThenSubstring(bucket, term)
}

// LookupVerbSense resolves verb/objectCategory to an ontology type,
// trying the exact category first, falling back to the overlay's
// "default" entry if present.
func (r *Registry) LookupVerbSense(verb, objectCategory string) (string, bool) {
	bucket, ok := r.verbSenseOverrides[verb]
	if !ok {
		return "", false
	}
	if v, ok := bucket[objectCategory]; ok {
		return v, true
	}
	if v, ok := bucket["default"]; ok {
		return v, true
	}
	return "", false
}

// LookupProcessRoot resolves term to a process-root-word
// specialization, exact match then substring containment.
func (r *Registry) LookupProcessRoot(term string) (string, bool) {
	return lookupExactThenSubstring(r.processRootSpecializations, term)
}

// lookupExactThenSubstring implements spec §4.18's "exact term; then
// substring containment" precedence: an exact key match wins outright;
// otherwise the first stored key (in sorted order, for determinism)
// that appears as a substring of term is used.
func lookupExactThenSubstring(bucket map[string]string, term string) (string, bool) {
	if v, ok := bucket[term]; ok {
		return v, true
	}
	keys := make([]string, 0, len(bucket))
	for k := range bucket {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "" {
			continue
		}
		if containsSubstring(term, k) {
			return bucket[k], true
		}
	}
	return "", false
}

func containsSubstring(haystack, needle string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
