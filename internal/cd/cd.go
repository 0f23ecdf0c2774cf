// Package cd implements the Complex Designator Detector (spec §4.10):
// a greedy left-to-right scan that collects runs of capitalized tokens
// into multi-word proper-name spans, plus the shadow-suppression rule
// that removes overlapping mentions once a CD span is active.
package cd

import (
	"unicode"

	"github.com/textgraph/semparse/internal/token"
)

// joiningWords are lowercase function words that continue an
// in-progress capitalized run rather than terminating it (spec §4.10).
var joiningWords = map[string]bool{
	"of": true, "and": true, "for": true,
	"the": true, "a": true, "an": true,
}

// Span is a detected complex designator: its character range and the
// indices (into the token slice passed to Detect) of its member
// tokens.
type Span struct {
	StartChar int
	EndChar   int
	Tokens    []int // indices into the input token slice
}

// Detect scans tokens greedily left to right, collecting runs of
// capitalized tokens (optionally bridged by joiningWords) into Spans.
// A run must contain at least two tokens to be reported — a single
// capitalized token is an ordinary proper noun, not a complex
// designator.
func Detect(tokens []token.Token) []Span {
	var spans []Span
	i := 0
	for i < len(tokens) {
		if !isCapitalized(tokens[i].Text) {
			i++
			continue
		}

		start := i
		runEnd := i + 1
		lastCapIdx := i

		for runEnd < len(tokens) {
			text := tokens[runEnd].Text
			if isCapitalized(text) {
				lastCapIdx = runEnd
				runEnd++
				continue
			}
			if joiningWords[lowerOf(text)] {
				// Look ahead past a run of joining words to see whether a
				// capitalized token resumes the span; if so, the whole
				// bridge joins the run, otherwise the run terminates here.
				peek := runEnd
				for peek < len(tokens) && joiningWords[lowerOf(tokens[peek].Text)] {
					peek++
				}
				if peek < len(tokens) && isCapitalized(tokens[peek].Text) {
					runEnd = peek
					continue
				}
			}
			break
		}

		if lastCapIdx > start {
			idxs := make([]int, 0, lastCapIdx-start+1)
			for k := start; k <= lastCapIdx; k++ {
				idxs = append(idxs, k)
			}
			spans = append(spans, Span{
				StartChar: tokens[start].Start,
				EndChar:   tokens[lastCapIdx].End,
				Tokens:    idxs,
			})
			i = lastCapIdx + 1
		} else {
			i++
		}
	}
	return spans
}

func isCapitalized(s string) bool {
	r := []rune(s)
	if len(r) == 0 {
		return false
	}
	if !unicode.IsUpper(r[0]) {
		return false
	}
	// An all-caps token (e.g. "NASA") is capitalized but must never be
	// mistaken for a verb inside a capitalized run (spec §4.10).
	return true
}

func lowerOf(s string) string {
	r := []rune(s)
	for i, c := range r {
		r[i] = unicode.ToLower(c)
	}
	return string(r)
}

// Overlaps reports whether char intervals [a,b) and [c,d) overlap:
// a<d && c<b (spec §4.10).
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Suppress filters spans (each given as a [start,end) char range via
// the bounds function) to only those that do NOT overlap any active CD
// span — implementing shadow suppression (spec §4.10): any mention or
// Tier-2 entity whose span overlaps an active CD span is removed from
// the graph before the act extractor runs.
func Suppress[T any](items []T, bounds func(T) (int, int), cdSpans []Span) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		start, end := bounds(item)
		shadowed := false
		for _, cd := range cdSpans {
			if Overlaps(start, end, cd.StartChar, cd.EndChar) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out = append(out, item)
		}
	}
	return out
}
