// Package depparse implements a greedy arc-eager transition-based
// dependency parser (spec §4.5): at each configuration it enumerates
// the legal transitions, scores them against a hashed feature store,
// and applies the arg-max transition until the buffer is exhausted.
// Inference only — the weight table is preloaded, never trained here.
package depparse

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/featstore"
	"github.com/textgraph/semparse/internal/token"
)

// Model is a loaded dependency-parser weight table plus the fixed
// label inventory transitions are scored over (spec §6 "dependency
// weights" + the UD label set the domain config may extend).
type Model struct {
	Store  *featstore.Store
	Labels []string // sorted UD dependency labels this parser can assign
}

// ModelError is returned for malformed parser model files.
type ModelError struct {
	Kind    string
	Message string
}

func (e ModelError) Error() string { return "depparse model error (" + e.Kind + "): " + e.Message }

// rawModel is the on-disk shape: numBuckets plus the weight table,
// keyed by transition name ("SHIFT", "REDUCE", "LEFT-ARC:nsubj", ...).
type rawModel struct {
	NumBuckets int                            `json:"numBuckets"`
	Weights    map[string]map[string]float64  `json:"weights"`
	Labels     []string                       `json:"labels"`
}

// LoadModel parses a dependency-parser model from r.
func LoadModel(r io.Reader) (*Model, error) {
	var raw rawModel
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, ModelError{Kind: "InvalidModel", Message: err.Error()}
	}
	labels := append([]string(nil), raw.Labels...)
	sort.Strings(labels)
	return &Model{Store: featstore.New(raw.NumBuckets, raw.Weights), Labels: labels}, nil
}

// transitionKind names the four arc-eager move types.
type transitionKind int

const (
	shift transitionKind = iota
	reduce
	leftArc
	rightArc
)

type transition struct {
	kind  transitionKind
	label string // empty for SHIFT/REDUCE
}

func (t transition) name() string {
	switch t.kind {
	case shift:
		return "SHIFT"
	case reduce:
		return "REDUCE"
	case leftArc:
		return "LEFT-ARC:" + t.label
	case rightArc:
		return "RIGHT-ARC:" + t.label
	}
	return "?"
}

// config is the parser's transient state: a stack of token ids (ROOT =
// 0 at the bottom), a buffer index into tokens 1..n, and per-token
// head/label/margin/child-tracking arrays built up as arcs commit.
type config struct {
	stack     []int
	bufferPos int // first buffer token id; buffer holds ids bufferPos..n
	n         int

	head       map[int]int
	label      map[int]string
	margin     map[int]float64
	leftChild  map[int]string // leftmost child label seen so far, by head
	rightChild map[int]string
	leftCount  map[int]int
	rightCount map[int]int
}

func newConfig(n int) *config {
	return &config{
		stack:      []int{0},
		bufferPos:  1,
		n:          n,
		head:       make(map[int]int),
		label:      make(map[int]string),
		margin:     make(map[int]float64),
		leftChild:  make(map[int]string),
		rightChild: make(map[int]string),
		leftCount:  make(map[int]int),
		rightCount: make(map[int]int),
	}
}

func (c *config) bufferEmpty() bool     { return c.bufferPos > c.n }
func (c *config) bufferAt(i int) int    { return c.bufferPos + i } // raw ids, valid only when <= n
func (c *config) bufferHas(i int) bool  { return c.bufferAt(i) <= c.n }
func (c *config) stackTop() int         { return c.stack[len(c.stack)-1] }
func (c *config) hasHead(tokenID int) bool {
	_, ok := c.head[tokenID]
	return ok
}

func (c *config) applyArc(dependent, head int, label string) {
	c.head[dependent] = head
	c.label[dependent] = label
	if dependent < head {
		if c.leftChild[head] == "" {
			c.leftChild[head] = label
		}
		c.leftCount[head]++
	} else {
		c.rightChild[head] = label
		c.rightCount[head]++
	}
}

// legalTransitions enumerates the moves valid in configuration c, per
// the preconditions in spec §4.5. LEFT-ARC and RIGHT-ARC are expanded
// once per label in m.Labels.
func legalTransitions(c *config, m *Model) []transition {
	var out []transition

	top := c.stackTop()
	bufferNonEmpty := !c.bufferEmpty()

	if bufferNonEmpty {
		out = append(out, transition{kind: shift})
	}
	if top != 0 && c.hasHead(top) {
		out = append(out, transition{kind: reduce})
	}
	if bufferNonEmpty && top != 0 && !c.hasHead(top) {
		for _, l := range m.Labels {
			out = append(out, transition{kind: leftArc, label: l})
		}
	}
	if bufferNonEmpty {
		for _, l := range m.Labels {
			out = append(out, transition{kind: rightArc, label: l})
		}
	}

	return out
}

// Parse runs the greedy arc-eager loop over tokens (ids 1..len(tokens))
// with their POS tags (tags[i] corresponds to tokens[i]), returning the
// final arcs; each arc carries the score margin of the transition that
// created it.
func Parse(m *Model, tokens []token.Token, tags []string) []deptree.Arc {
	arcs, _ := parse(m, tokens, tags, false)
	return arcs
}

// ParseWithTrace behaves like Parse but also returns the transition name
// chosen at each configuration, in order — used by the builder's debug
// trace (spec §11 "the transition sequence chosen by the parser per
// sentence").
func ParseWithTrace(m *Model, tokens []token.Token, tags []string) (arcs []deptree.Arc, trace []string) {
	return parse(m, tokens, tags, true)
}

func parse(m *Model, tokens []token.Token, tags []string, collectTrace bool) ([]deptree.Arc, []string) {
	n := len(tokens)
	if n == 0 {
		return nil, nil
	}
	c := newConfig(n)
	var trace []string

	for !(c.bufferEmpty() && len(c.stack) == 1) {
		candidates := legalTransitions(c, m)
		if len(candidates) == 0 {
			break
		}

		names := make([]string, len(candidates))
		byName := make(map[string]transition, len(candidates))
		for i, cand := range candidates {
			name := cand.name()
			names[i] = name
			byName[name] = cand
		}
		sort.Strings(names)

		feats := extractFeatures(c, tokens, tags)
		scores := m.Store.ScoreLabels(feats, names)
		bestName, margin := featstore.ArgMax(scores, names)
		best := byName[bestName]

		if collectTrace {
			trace = append(trace, bestName)
		}
		applyTransition(c, best, margin)
	}

	return finalizeArcs(c, n), trace
}

func applyTransition(c *config, t transition, margin float64) {
	switch t.kind {
	case shift:
		c.stack = append(c.stack, c.bufferAt(0))
		c.bufferPos++
	case reduce:
		c.stack = c.stack[:len(c.stack)-1]
	case leftArc:
		dependent := c.bufferAt(0)
		head := c.stackTop()
		c.applyArc(dependent, head, t.label)
		c.margin[dependent] = margin
		c.stack = c.stack[:len(c.stack)-1]
	case rightArc:
		head := c.stackTop()
		dependent := c.bufferAt(0)
		c.applyArc(dependent, head, t.label)
		c.margin[dependent] = margin
		c.stack = append(c.stack, dependent)
		c.bufferPos++
	}
}

// finalizeArcs sweeps any non-ROOT stack items left headless at the end
// of parsing and attaches them to ROOT with label "root", margin 0
// (spec §4.5 "End:").
func finalizeArcs(c *config, n int) []deptree.Arc {
	for i := len(c.stack) - 1; i >= 0; i-- {
		id := c.stack[i]
		if id == 0 {
			continue
		}
		if !c.hasHead(id) {
			c.head[id] = 0
			c.label[id] = "root"
			c.margin[id] = 0
		}
	}

	arcs := make([]deptree.Arc, 0, n)
	for id := 1; id <= n; id++ {
		head, ok := c.head[id]
		if !ok {
			// A token that never received an arc (shouldn't occur given
			// the sweep above, but arc-eager correctness isn't proven
			// here) defaults to a root attachment with zero confidence.
			head, c.label[id], c.margin[id] = 0, "root", 0
		}
		arcs = append(arcs, deptree.Arc{
			Dependent:   id,
			Head:        head,
			Label:       c.label[id],
			ScoreMargin: c.margin[id],
		})
	}
	return arcs
}

// extractFeatures builds the ~40-60 feature window over stack[0..1] and
// buffer[0..2] described in spec §4.5 step 2.
func extractFeatures(c *config, tokens []token.Token, tags []string) []string {
	var feats []string

	stackTokens := lastN(c.stack, 2) // [top, second]; 0 for ROOT, -1 when absent
	bufferTokens := []int{-1, -1, -1}
	for i := 0; i < 3; i++ {
		if c.bufferAt(i) <= c.n {
			bufferTokens[i] = c.bufferAt(i)
		}
	}

	addTokenFeats := func(prefix string, id int) {
		if id <= 0 {
			feats = append(feats, prefix+"=ROOT")
			return
		}
		surf := tokens[id-1].Text
		tag := tags[id-1]
		feats = append(feats,
			prefix+"w="+surf,
			prefix+"lw="+strings.ToLower(surf),
			prefix+"t="+tag,
			prefix+"deprel="+c.label[id],
			prefix+"shape="+shapeOf(surf),
			prefix+"suf3="+suffixN(surf, 3),
		)
	}

	addTokenFeats("s0", stackTokens[0])
	addTokenFeats("s1", stackTokens[1])
	for i, id := range bufferTokens {
		addTokenFeats("b"+strconv.Itoa(i), id)
	}

	top := stackTokens[0]
	if top > 0 {
		feats = append(feats,
			"s0LeftChild="+c.leftChild[top],
			"s0RightChild="+c.rightChild[top],
			"s0LeftCount="+strconv.Itoa(bin3(c.leftCount[top])),
			"s0RightCount="+strconv.Itoa(bin3(c.rightCount[top])),
		)
	}
	if b0 := bufferTokens[0]; b0 > 0 {
		feats = append(feats,
			"b0LeftChild="+c.leftChild[b0],
			"b0LeftCount="+strconv.Itoa(bin3(c.leftCount[b0])),
		)
	}

	if top > 0 && bufferTokens[0] > 0 {
		feats = append(feats, "dist="+strconv.Itoa(bin10(bufferTokens[0]-top)))
	}

	if top > 0 {
		feats = append(feats, "s0tag+b0tag="+tagOf(tags, top)+"+"+tagOf(tags, bufferTokens[0]))
	}

	// Second-order deprel context: the label of stack[0]'s head, if any.
	if top > 0 {
		if head, ok := c.head[top]; ok {
			feats = append(feats, "s0headDeprel="+c.label[head])
		}
	}

	return feats
}

func tagOf(tags []string, id int) string {
	if id <= 0 || id > len(tags) {
		return "ROOT"
	}
	return tags[id-1]
}

func lastN(stack []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for i := 0; i < n && i < len(stack); i++ {
		id := stack[len(stack)-1-i]
		if id == 0 {
			out[i] = 0
			continue
		}
		out[i] = id
	}
	return out
}

func bin3(n int) int {
	if n > 3 {
		return 3
	}
	return n
}

func bin10(d int) int {
	if d < 0 {
		d = -d
	}
	if d > 10 {
		return 10
	}
	return d
}

func suffixN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func shapeOf(s string) string {
	var b strings.Builder
	var last rune
	for _, r := range s {
		var c rune
		switch {
		case r >= 'A' && r <= 'Z':
			c = 'X'
		case r >= 'a' && r <= 'z':
			c = 'x'
		case r >= '0' && r <= '9':
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
