// Package confidence implements the Confidence Annotator (spec §4.8):
// calibrated-probability lookup over a parser's score margins, bucket
// classification into high/medium/low, and the min-reduction used to
// roll arc confidences up into entity and role confidences.
package confidence

import (
	"sort"

	"github.com/textgraph/semparse/internal/deptree"
)

// Bin is a single calibration point: margin threshold and its
// calibrated probability.
type Bin struct {
	Margin      float64
	Probability float64
}

// Table is a calibration table, kept sorted by ascending Margin.
type Table struct {
	bins []Bin
}

// NewTable builds a Table from bins in any order, sorting them by
// margin.
func NewTable(bins []Bin) *Table {
	sorted := append([]Bin(nil), bins...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Margin < sorted[j].Margin })
	return &Table{bins: sorted}
}

// Calibrate returns the probability for score margin m: the bin with
// the greatest threshold <= m, the first bin's probability if m is
// below every threshold, or 0.5 if the table is absent or empty (spec
// §4.8).
func (t *Table) Calibrate(m float64) float64 {
	if t == nil || len(t.bins) == 0 {
		return 0.5
	}
	if m < t.bins[0].Margin {
		return t.bins[0].Probability
	}
	best := t.bins[0].Probability
	for _, b := range t.bins {
		if b.Margin <= m {
			best = b.Probability
		} else {
			break
		}
	}
	return best
}

// Bucket is the coarse confidence classification of a calibrated
// probability.
type Bucket string

const (
	High   Bucket = "high"
	Medium Bucket = "medium"
	Low    Bucket = "low"
)

// ppAttachLabels are the labels subject to the stricter PP-attachment
// bucket thresholds (spec §4.8).
var ppAttachLabels = map[string]bool{"obl": true, "nmod": true}

// BucketFor classifies a calibrated probability into a Bucket, using
// the stricter obl/nmod thresholds when label is a PP-attachment label.
func BucketFor(label string, probability float64) Bucket {
	if ppAttachLabels[label] {
		switch {
		case probability >= 0.95:
			return High
		case probability >= 0.7:
			return Medium
		default:
			return Low
		}
	}
	switch {
	case probability >= 0.9:
		return High
	case probability >= 0.6:
		return Medium
	default:
		return Low
	}
}

// IsPPAttach reports whether label is subject to the PP-attach
// alternative-label logic (obl <-> nmod).
func IsPPAttach(label string) bool { return ppAttachLabels[label] }

// AlternativeLabel returns the obl<->nmod flip for PP-attach labels,
// and ok=false for any other label.
func AlternativeLabel(label string) (alt string, ok bool) {
	switch label {
	case "obl":
		return "nmod", true
	case "nmod":
		return "obl", true
	default:
		return "", false
	}
}

// AlternativeAttachment is attached to every PP-attach arc regardless
// of its confidence bucket (spec §4.8).
type AlternativeAttachment struct {
	Dependent      int
	CurrentLabel   string
	AlternateLabel string
}

// AmbiguitySignal is attached to arcs bucketed Low: it records the arc,
// an alternative label guess, and the calibrated probability that
// triggered the signal.
type AmbiguitySignal struct {
	Dependent           int
	Head                int
	Label               string
	AlternateLabel      string
	CalibratedProbability float64
}

// AnnotatedArc bundles one arc with its calibrated confidence and any
// ambiguity/alternative-attachment annotations.
type AnnotatedArc struct {
	Arc                   deptree.Arc
	CalibratedProbability float64
	Bucket                Bucket
	Alternative           *AlternativeAttachment
	Ambiguity             *AmbiguitySignal
}

// Annotate calibrates and buckets every arc, attaching
// AlternativeAttachment records to every PP-attach arc and
// AmbiguitySignal records to every arc bucketed Low.
func Annotate(table *Table, arcs []deptree.Arc) []AnnotatedArc {
	out := make([]AnnotatedArc, len(arcs))
	for i, a := range arcs {
		p := table.Calibrate(a.ScoreMargin)
		bucket := BucketFor(a.Label, p)

		ann := AnnotatedArc{Arc: a, CalibratedProbability: p, Bucket: bucket}

		if alt, ok := AlternativeLabel(a.Label); ok {
			ann.Alternative = &AlternativeAttachment{
				Dependent:      a.Dependent,
				CurrentLabel:   a.Label,
				AlternateLabel: alt,
			}
		}

		if bucket == Low {
			alt, ok := AlternativeLabel(a.Label)
			if !ok {
				alt = guessAlternative(a.Label)
			}
			ann.Ambiguity = &AmbiguitySignal{
				Dependent:             a.Dependent,
				Head:                  a.Head,
				Label:                 a.Label,
				AlternateLabel:        alt,
				CalibratedProbability: p,
			}
		}

		out[i] = ann
	}
	return out
}

// commonConfusions gives a plausible alternative label for non-PP-attach
// labels that still fall into the Low bucket, mirroring the ambiguity
// pairs most dependency parsers confuse (spec §4.8 names "an
// alternative label" without enumerating the full confusion table
// outside obl/nmod; this extends it to the other frequently-confused
// UD pairs).
var commonConfusions = map[string]string{
	"dobj":      "obj",
	"obj":       "iobj",
	"compound":  "amod",
	"amod":      "compound",
	"advmod":    "amod",
	"xcomp":     "ccomp",
	"ccomp":     "xcomp",
	"conj":      "appos",
	"appos":     "conj",
}

func guessAlternative(label string) string {
	if alt, ok := commonConfusions[label]; ok {
		return alt
	}
	return "dep"
}

// EntityConfidence is the min over calibrated probabilities of arcs
// whose dependent lies in span (spec §4.8). An empty span yields 1.0
// (no evidence to lower confidence).
func EntityConfidence(annotated []AnnotatedArc, span []int) float64 {
	inSpan := make(map[int]bool, len(span))
	for _, id := range span {
		inSpan[id] = true
	}
	best := 1.0
	found := false
	for _, a := range annotated {
		if !inSpan[a.Arc.Dependent] {
			continue
		}
		found = true
		if a.CalibratedProbability < best {
			best = a.CalibratedProbability
		}
	}
	if !found {
		return 1.0
	}
	return best
}

// RoleConfidence is the min of an entity's and an act's confidences
// (spec §4.8).
func RoleConfidence(entityConfidence, actConfidence float64) float64 {
	if entityConfidence < actConfidence {
		return entityConfidence
	}
	return actConfidence
}
