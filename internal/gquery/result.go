package gquery

import (
	"fmt"
	"strings"

	"github.com/textgraph/semparse/internal/semgraph"
)

// Result is the query-evaluation result, following the teacher's
// Kind()/String() Result shape (internal/result/result.go) retargeted
// from probabilistic path results to node sets.
type Result interface {
	Kind() Kind
	String() string
}

// Kind distinguishes the one Result variant this package currently
// produces; kept as its own type (rather than a bare bool) so gquery
// can grow additional result shapes (e.g. a count-only result) without
// breaking callers that switch on Kind.
type Kind int

const (
	NodeSetResultKind Kind = iota
)

// NodeSetResult is every graph node that matched a FIND query, in the
// graph's stable insertion order.
type NodeSetResult struct {
	Nodes []semgraph.Node
}

func (r NodeSetResult) Kind() Kind { return NodeSetResultKind }

func (r NodeSetResult) String() string {
	if len(r.Nodes) == 0 {
		return "No matching nodes."
	}
	var b strings.Builder
	for i, n := range r.Nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%d] %s %v", i+1, n.ID(), n.Types())
	}
	return b.String()
}
