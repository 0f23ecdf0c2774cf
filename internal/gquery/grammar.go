// Package gquery implements a small read-only query DSL over a finished
// semantic graph (spec §6, additive): `FIND <TypeTag> [WHERE <field> <op>
// <value> (AND ...)*]`. Grounded directly on the teacher's
// internal/dsl (participle grammar + parser), internal/query (the
// Query interface and composite evaluation shape), and internal/result
// (a Kind()/String() typed result), retargeted from graph-mutation
// statements and probabilistic path queries to read-only node-set
// filtering over semgraph.Graph.
package gquery

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var gqueryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(FIND|WHERE|AND|CONTAINS|TRUE|FALSE)\b`},
	{Name: "Float", Pattern: `-?\d+\.\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Op", Pattern: `=`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Grammar is the top-level AST node: one FIND query.
type Grammar struct {
	Find *FindAST `parser:"@@"`
}

// FindAST: FIND <TypeName> [WHERE <condition> (AND <condition>)*]
type FindAST struct {
	TypeName string           `parser:"\"FIND\" @Ident"`
	Where    []*ConditionAST `parser:"( \"WHERE\" @@ ( \"AND\" @@ )* )?"`
}

// ConditionAST: <field> (= | CONTAINS) <value>
type ConditionAST struct {
	Field string    `parser:"@Ident"`
	Op    string    `parser:"@( Op | \"CONTAINS\" )"`
	Value *ValueAST `parser:"@@"`
}

// ValueAST: a typed literal used on the right-hand side of a condition.
type ValueAST struct {
	Str   *string  `parser:"  @String"`
	Float *float64 `parser:"| @Float"`
	Int   *int64   `parser:"| @Int"`
	True  bool     `parser:"| @\"TRUE\""`
	False bool     `parser:"| @\"FALSE\""`
	Ident *string  `parser:"| @Ident"`
}

var gqueryParser = participle.MustBuild[Grammar](
	participle.Lexer(gqueryLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
)
