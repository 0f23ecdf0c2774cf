// Package deptree provides an immutable indexed view over dependency
// arcs (spec §4.7): child-of/head-of lookups and subtree traversal with
// clause-boundary and apposition exclusions. Grounded on the teacher's
// adjacency indexing in internal/graph (its `out`/`in` maps built once
// at construction and never mutated afterward).
package deptree

import "sort"

// Arc is a single dependency edge: dependent -> head, labeled, carrying
// the parser's score margin for that attachment decision (spec §3).
// Token ids are 1-based; head == 0 denotes the sentence ROOT sentinel.
type Arc struct {
	Dependent   int
	Head        int
	Label       string
	ScoreMargin float64
}

// clauseBoundaryLabels are child labels at which entity_subtree stops
// recursing — the dependent starts a new clause or is otherwise not
// part of its head's semantic span (spec §4.7).
var clauseBoundaryLabels = map[string]bool{
	"acl:relcl": true,
	"acl":       true,
	"advcl":     true,
	"cop":       true,
	"punct":     true,
}

// DepTree is the read-only view produced once per sentence after
// parsing and arc correction.
type DepTree struct {
	arcs       []Arc
	childrenOf map[int][]Arc // head -> arcs whose head is this token, sorted by dependent id
	arcOf      map[int]Arc   // dependent -> its single arc
	numTokens  int
}

// New builds a DepTree from final arcs (1..numTokens must each have
// exactly one arc). New does not check this: arcs are indexed as given,
// and where two arcs share a dependent, ArcOf returns the later one
// while ChildrenOf lists each under its own head.
func New(arcs []Arc, numTokens int) *DepTree {
	t := &DepTree{
		childrenOf: make(map[int][]Arc),
		arcOf:      make(map[int]Arc, numTokens),
		numTokens:  numTokens,
	}

	sorted := make([]Arc, len(arcs))
	copy(sorted, arcs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Dependent < sorted[j].Dependent })
	t.arcs = sorted

	for _, a := range sorted {
		t.arcOf[a.Dependent] = a
		t.childrenOf[a.Head] = append(t.childrenOf[a.Head], a)
	}
	for head := range t.childrenOf {
		sort.Slice(t.childrenOf[head], func(i, j int) bool {
			return t.childrenOf[head][i].Dependent < t.childrenOf[head][j].Dependent
		})
	}

	return t
}

// Arcs returns all arcs, sorted by dependent id.
func (t *DepTree) Arcs() []Arc { return t.arcs }

// ArcOf returns the arc whose dependent is tokenID, and whether it exists.
func (t *DepTree) ArcOf(tokenID int) (Arc, bool) {
	a, ok := t.arcOf[tokenID]
	return a, ok
}

// ChildrenOf returns the arcs whose head is tokenID, sorted by dependent id.
func (t *DepTree) ChildrenOf(tokenID int) []Arc {
	return t.childrenOf[tokenID]
}

// ChildrenWithLabel filters ChildrenOf to a single label.
func (t *DepTree) ChildrenWithLabel(tokenID int, label string) []Arc {
	var out []Arc
	for _, a := range t.childrenOf[tokenID] {
		if a.Label == label {
			out = append(out, a)
		}
	}
	return out
}

// Roots returns the token ids whose head is the ROOT sentinel (0).
func (t *DepTree) Roots() []int {
	var out []int
	for _, a := range t.childrenOf[0] {
		out = append(out, a.Dependent)
	}
	sort.Ints(out)
	return out
}

// EntitySubtree returns the sorted token ids of the connected subtree
// rooted at head, stopping recursion at any child whose label is a
// clause boundary and at `appos` children (appositions are separate
// entities, surfaced via Appositions instead).
func (t *DepTree) EntitySubtree(head int) []int {
	seen := map[int]bool{head: true}
	var walk func(int)
	walk = func(node int) {
		for _, a := range t.childrenOf[node] {
			if clauseBoundaryLabels[a.Label] || a.Label == "appos" {
				continue
			}
			if seen[a.Dependent] {
				continue
			}
			seen[a.Dependent] = true
			walk(a.Dependent)
		}
	}
	walk(head)

	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Appositions returns, for each `appos` child of head, the sorted token
// ids in that child's full subtree with punctuation tokens (arcs
// labeled `punct`) removed (spec §4.7).
func (t *DepTree) Appositions(head int) [][]int {
	var groups [][]int
	for _, a := range t.childrenOf[head] {
		if a.Label != "appos" {
			continue
		}
		full := t.fullSubtree(a.Dependent)
		group := make([]int, 0, len(full))
		for _, id := range full {
			if arc, ok := t.arcOf[id]; ok && arc.Label == "punct" {
				continue
			}
			group = append(group, id)
		}
		groups = append(groups, group)
	}
	return groups
}

// fullSubtree returns every token id under node with no boundary
// exclusions — used for apposition spans and for the final sweep that
// must see every attached token regardless of clause labels.
func (t *DepTree) fullSubtree(node int) []int {
	seen := map[int]bool{node: true}
	var walk func(int)
	walk = func(n int) {
		for _, a := range t.childrenOf[n] {
			if seen[a.Dependent] {
				continue
			}
			seen[a.Dependent] = true
			walk(a.Dependent)
		}
	}
	walk(node)
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// IsClauseBoundaryLabel reports whether label stops subtree recursion.
func IsClauseBoundaryLabel(label string) bool { return clauseBoundaryLabels[label] }
