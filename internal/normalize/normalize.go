// Package normalize folds Unicode punctuation variants and whitespace
// oddities down to a small ASCII-friendly vocabulary so every downstream
// component sees a canonical surface form. It is the first pipeline
// stage (spec §4.1) and must be idempotent.
package normalize

import "strings"

// runeFold is a table-driven single-rune replacement, kept as data (not
// inlined logic) so tests can add cases without touching the algorithm —
// the same "expose the table" idiom the teacher uses for its DSL lexer
// rules.
var runeFold = map[rune]string{
	'‘': "'", // left single quote
	'’': "'", // right single quote
	'‚': "'", // single low-9 quote
	'‛': "'", // single high-reversed-9 quote
	'“': `"`, // left double quote
	'”': `"`, // right double quote
	'„': `"`, // double low-9 quote
	'‟': `"`, // double high-reversed-9 quote
	' ': " ", // non-breaking space
	' ': " ", // figure space
	' ': " ", // narrow no-break space
	'–': "-", // en dash
	'…': "...",
	'​': "", // zero-width space
	'‌': "", // zero-width non-joiner
	'‍': "", // zero-width joiner
	'\U0000FEFF': "", // BOM / zero-width no-break space
	'­': "", // soft hyphen
}

// Normalize folds curly quotes to ASCII quotes, non-breaking spaces to
// spaces, en dashes to hyphens, em dashes to a space-padded double
// hyphen, ellipsis to three periods, and removes zero-width/soft-hyphen
// characters. Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '—' { // em dash -> " -- "
			b.WriteString(emDashReplacement(runes, i))
			continue
		}

		if repl, ok := runeFold[r]; ok {
			b.WriteString(repl)
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// emDashReplacement pads the double-hyphen with spaces unless the
// surrounding text already has whitespace there, keeping Normalize
// idempotent (re-normalizing "foo -- bar" must not add more spaces).
func emDashReplacement(runes []rune, i int) string {
	needsLeadingSpace := i == 0 || !isSpace(runes[i-1])
	needsTrailingSpace := i == len(runes)-1 || !isSpace(runes[i+1])

	out := "--"
	if needsLeadingSpace {
		out = " " + out
	}
	if needsTrailingSpace {
		out = out + " "
	}
	return out
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
