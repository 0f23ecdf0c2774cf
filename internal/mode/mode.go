// Package mode implements the Sentence-Mode Classifier, nicknamed the
// "traffic cop" (spec §4.12): it maps each main verb to a stative/
// eventive class and derives an overall sentence mode plus a greedy-NER
// auto-enable signal from the object's structural complexity.
package mode

import (
	"strings"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/token"
)

// VerbClass is the per-verb classification (spec §4.12).
type VerbClass string

const (
	StativeDefinite  VerbClass = "STATIVE_DEFINITE"
	StativeAmbiguous VerbClass = "STATIVE_AMBIGUOUS"
	Eventive         VerbClass = "EVENTIVE"
)

// SentenceMode is the rolled-up classification for the whole sentence.
type SentenceMode string

const (
	Structural SentenceMode = "STRUCTURAL"
	Narrative  SentenceMode = "NARRATIVE"
)

// stativeDefiniteVerbs always denote structural/definitional relations.
var stativeDefiniteVerbs = map[string]bool{
	"be": true, "is": true, "are": true, "was": true, "were": true,
	"equal": true, "constitute": true, "represent": true, "comprise": true,
}

// stativeAmbiguousVerbs are stative in most uses but can carry event
// readings depending on context; "have" is handled separately since its
// stativity depends on what follows it (spec §4.12).
var stativeAmbiguousVerbs = map[string]bool{
	"own": true, "belong": true, "contain": true, "consist": true,
	"resemble": true, "include": true, "involve": true,
}

// ClassifyVerb maps an infinitive lemma to its VerbClass. followedByTo
// and underModal capture the two conditions that make "have" eventive
// rather than stative (spec §4.12: "`have` is stative unless
// immediately followed by `to` or under a modal").
func ClassifyVerb(lemma string, followedByTo, underModal bool) VerbClass {
	lemma = strings.ToLower(lemma)
	if lemma == "have" || lemma == "has" || lemma == "had" {
		if followedByTo || underModal {
			return Eventive
		}
		return StativeDefinite
	}
	if stativeDefiniteVerbs[lemma] {
		return StativeDefinite
	}
	if stativeAmbiguousVerbs[lemma] {
		return StativeAmbiguous
	}
	return Eventive
}

// Classification is the sentence-level result of rolling up every main
// verb's class.
type Classification struct {
	Mode              SentenceMode
	HighConfidence    bool
	GreedyNEREnabled  bool
	ObjectComplexity  float64
}

// Classify rolls up per-verb classes into a sentence mode: STRUCTURAL
// (high confidence) if any verb is StativeDefinite, STRUCTURAL (lower
// confidence) if any is StativeAmbiguous (and none StativeDefinite),
// else NARRATIVE (spec §4.12).
func Classify(verbClasses []VerbClass) (SentenceMode, bool) {
	hasDefinite, hasAmbiguous := false, false
	for _, c := range verbClasses {
		switch c {
		case StativeDefinite:
			hasDefinite = true
		case StativeAmbiguous:
			hasAmbiguous = true
		}
	}
	if hasDefinite {
		return Structural, true
	}
	if hasAmbiguous {
		return Structural, false
	}
	return Narrative, true
}

// joiningConnectors are the connector words counted toward object
// complexity (spec §4.12 "frequency of joining connectors").
var joiningConnectors = map[string]bool{
	"and": true, "or": true, "but": true, "with": true, "including": true,
}

// objectComplexityThreshold is the density above which greedy NER
// auto-enables for the sentence.
const objectComplexityThreshold = 0.35

// minContentWords is the minimum content-word count the object tail
// must have before auto-enable can trigger (spec §4.12 "and the object
// has >=4 content words").
const minContentWords = 4

// ObjectComplexity measures the density of capitalized tokens plus the
// frequency of joining connectors/commas across the verb's object tail
// (the tokens after the main verb), and reports whether that density
// crosses the auto-enable threshold given enough content words.
func ObjectComplexity(tail []token.Token, tags []string) (density float64, autoEnableGreedyNER bool) {
	if len(tail) == 0 {
		return 0, false
	}

	capCount, connectorCount, commaCount, contentWords := 0, 0, 0, 0
	for i, tok := range tail {
		if isCapitalized(tok.Text) {
			capCount++
		}
		if joiningConnectors[strings.ToLower(tok.Text)] {
			connectorCount++
		}
		if tok.Text == "," {
			commaCount++
		}
		if i < len(tags) && isContentTag(tags[i]) {
			contentWords++
		}
	}

	density = float64(capCount+connectorCount+commaCount) / float64(len(tail))
	autoEnableGreedyNER = density > objectComplexityThreshold && contentWords >= minContentWords
	return density, autoEnableGreedyNER
}

func isContentTag(tag string) bool {
	switch {
	case strings.HasPrefix(tag, "NN"),
		strings.HasPrefix(tag, "VB"),
		strings.HasPrefix(tag, "JJ"),
		strings.HasPrefix(tag, "RB"):
		return true
	}
	return false
}

func isCapitalized(s string) bool {
	r := []rune(s)
	return len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z'
}

// MainVerbs returns the token ids of main verbs in the sentence: the
// root if it's a verb, plus any conj-coordinated verbs at the root
// level (spec §4.12 operates "for each main verb").
func MainVerbs(tree *deptree.DepTree, tags []string) []int {
	var verbs []int
	for _, rootID := range tree.Roots() {
		if rootID-1 >= 0 && rootID-1 < len(tags) && strings.HasPrefix(tags[rootID-1], "VB") {
			verbs = append(verbs, rootID)
		}
		for _, conj := range tree.ChildrenWithLabel(rootID, "conj") {
			if conj.Dependent-1 >= 0 && conj.Dependent-1 < len(tags) && strings.HasPrefix(tags[conj.Dependent-1], "VB") {
				verbs = append(verbs, conj.Dependent)
			}
		}
	}
	return verbs
}
