package gquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/textgraph/semparse/internal/semgraph"
)

// Query parses dslText as a gquery FIND statement and evaluates it
// against graph, returning the matching nodes (spec §6, additive — no
// spec.md operation depends on it).
func Query(graph *semgraph.Graph, dslText string) (Result, error) {
	ast, err := gqueryParser.ParseString("", dslText)
	if err != nil {
		return nil, SyntaxError{Kind: "InvalidSyntax", Message: err.Error()}
	}
	return evaluate(ast.Find, graph)
}

func evaluate(find *FindAST, g *semgraph.Graph) (Result, error) {
	conditions, err := convertConditions(find.Where)
	if err != nil {
		return nil, err
	}

	var matched []semgraph.Node
	for _, n := range g.Nodes() {
		if !hasType(n, find.TypeName) {
			continue
		}
		if matchesAll(n, conditions) {
			matched = append(matched, n)
		}
	}
	return NodeSetResult{Nodes: matched}, nil
}

func hasType(n semgraph.Node, typeName string) bool {
	for _, t := range n.Types() {
		if t == typeName {
			return true
		}
	}
	return false
}

type condition struct {
	Field string
	Op    string
	Value any
}

func convertConditions(asts []*ConditionAST) ([]condition, error) {
	out := make([]condition, 0, len(asts))
	for _, c := range asts {
		v, err := convertValue(c.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, condition{Field: c.Field, Op: strings.ToUpper(c.Op), Value: v})
	}
	return out, nil
}

func convertValue(v *ValueAST) (any, error) {
	switch {
	case v.Str != nil:
		return strings.Trim(*v.Str, `"`), nil
	case v.Float != nil:
		return *v.Float, nil
	case v.Int != nil:
		return *v.Int, nil
	case v.True:
		return true, nil
	case v.False:
		return false, nil
	case v.Ident != nil:
		return *v.Ident, nil
	default:
		return nil, SyntaxError{Kind: "InvalidValue", Message: "condition value has no recognized literal"}
	}
}

func matchesAll(n semgraph.Node, conditions []condition) bool {
	for _, c := range conditions {
		if !matchesOne(n, c) {
			return false
		}
	}
	return true
}

func matchesOne(n semgraph.Node, c condition) bool {
	var fieldValue any
	if c.Field == "id" {
		fieldValue = n.ID()
	} else {
		fieldValue = n.Fields()[c.Field]
	}

	switch c.Op {
	case "CONTAINS":
		return containsMatch(fieldValue, c.Value)
	default: // "="
		return equalsMatch(fieldValue, c.Value)
	}
}

func equalsMatch(fieldValue, want any) bool {
	switch fv := fieldValue.(type) {
	case string:
		return fv == stringify(want)
	case bool:
		b, ok := want.(bool)
		return ok && fv == b
	case int:
		return float64(fv) == numeric(want)
	case float64:
		return fv == numeric(want)
	case []string:
		for _, s := range fv {
			if s == stringify(want) {
				return true
			}
		}
		return false
	default:
		return fmt.Sprintf("%v", fieldValue) == stringify(want)
	}
}

func containsMatch(fieldValue, want any) bool {
	switch fv := fieldValue.(type) {
	case string:
		return strings.Contains(fv, stringify(want))
	case []string:
		for _, s := range fv {
			if s == stringify(want) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func numeric(v any) float64 {
	switch t := v.(type) {
	case int64:
		return float64(t)
	case float64:
		return t
	default:
		return 0
	}
}
