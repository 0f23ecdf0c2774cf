package semparse

import "github.com/textgraph/semparse/internal/token"

// sentenceTerminators end a sentence for the builder's purposes — the
// dependency parser, traffic cop, and clause segmenter all operate over
// one sentence's tokens at a time (spec §4.17's per-sentence temporal
// linking is delimited by "the '.' character").
var sentenceTerminators = map[string]bool{
	".": true, "!": true, "?": true,
}

// sentenceBoundaries returns the exclusive end index of each sentence in
// tokens, in order, with the final boundary always equal to len(tokens).
// Index ranges (not token-slice copies) let the caller re-slice tags and
// lemmas in lockstep with tokens without losing alignment.
func sentenceBoundaries(tokens []token.Token) []int {
	var bounds []int
	for i, t := range tokens {
		if sentenceTerminators[t.Text] {
			bounds = append(bounds, i+1)
		}
	}
	if len(bounds) == 0 || bounds[len(bounds)-1] != len(tokens) {
		bounds = append(bounds, len(tokens))
	}
	return bounds
}
