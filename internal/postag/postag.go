// Package postag implements greedy left-to-right part-of-speech tagging
// with an averaged-perceptron scorer (spec §4.3): inference only, no
// training. Tags follow the Penn Treebank tagset.
package postag

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/textgraph/semparse/internal/featstore"
	"github.com/textgraph/semparse/internal/token"
)

// Model is a loaded POS-tagger weight table: a mapping feature ->
// mapping tag -> weight (spec §6 "POS weights"). The feature store is
// unbucketed for POS tagging — the model file already lists verbatim
// feature strings.
type Model struct {
	Store *featstore.Store
	Tags  []string // sorted vocabulary, used to break argmax ties deterministically
}

// LoadModel parses a POS weight table from r.
func LoadModel(r io.Reader) (*Model, error) {
	var raw map[string]map[string]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, ModelError{Kind: "InvalidModel", Message: err.Error()}
	}
	tagSet := make(map[string]struct{})
	for _, row := range raw {
		for tag := range row {
			tagSet[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return &Model{Store: featstore.New(0, raw), Tags: tags}, nil
}

// ModelError is returned for malformed POS model files.
type ModelError struct {
	Kind    string
	Message string
}

func (e ModelError) Error() string { return "postag model error (" + e.Kind + "): " + e.Message }

// Tag assigns one tag per token, deterministically and left to right.
// An empty or nil model yields an empty tag for every token (unknown
// features contribute 0 to every candidate, so the first vocabulary
// entry — alphabetically — wins by the ArgMax tie-break rule, or "" if
// the model carries no vocabulary at all).
func Tag(m *Model, tokens []token.Token) []string {
	if m == nil || len(m.Tags) == 0 {
		out := make([]string, len(tokens))
		return out
	}

	tags := make([]string, len(tokens))
	prev, prevPrev := "<s>", "<s>"

	for i := range tokens {
		feats := features(tokens, i, prev, prevPrev)
		scores := m.Store.ScoreLabels(feats, m.Tags)
		best, _ := featstore.ArgMax(scores, m.Tags)
		tags[i] = best
		prevPrev = prev
		prev = best
	}

	return tags
}

// features builds the window feature set for token i: bias, surface,
// lowercase, suffix/prefix (length 3), word shape, and the two
// preceding tags, matching spec §4.3's feature list.
func features(tokens []token.Token, i int, prevTag, prevPrevTag string) []string {
	surface := tokens[i].Text
	lower := strings.ToLower(surface)

	feats := []string{
		"bias",
		"word=" + surface,
		"lower=" + lower,
		"suffix3=" + suffix(lower, 3),
		"prefix3=" + prefix(lower, 3),
		"shape=" + shape(surface),
		"prevTag=" + prevTag,
		"prevPrevTag=" + prevPrevTag,
		"prevTagBigram=" + prevPrevTag + "+" + prevTag,
	}

	if i > 0 {
		feats = append(feats, "prevWord="+strings.ToLower(tokens[i-1].Text))
	}
	if i+1 < len(tokens) {
		feats = append(feats, "nextWord="+strings.ToLower(tokens[i+1].Text))
	}

	return feats
}

func suffix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// shape maps a surface form to a coarse orthographic shape: upper case
// maps to "X", lower case to "x", digits to "d", other runes stay as
// they are, and runs of the same class collapse to one character
// ("Bob" -> "Xx", "USA" -> "X", "dog" -> "x", "3pm" -> "dx").
func shape(s string) string {
	var b strings.Builder
	var last rune
	for _, r := range s {
		var c rune
		switch {
		case unicode.IsUpper(r):
			c = 'X'
		case unicode.IsLower(r):
			c = 'x'
		case unicode.IsDigit(r):
			c = 'd'
		default:
			c = r
		}
		if c != last {
			b.WriteRune(c)
		}
		last = c
	}
	return b.String()
}
