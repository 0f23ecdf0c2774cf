package semparse

import (
	"time"

	"github.com/textgraph/semparse/internal/semgraph"
)

// Metadata is the metadata block of spec §6's
// `{ graph, metadata, debug?, ambiguityReport? }` return shape.
type Metadata struct {
	BuildTimestamp string // RFC3339
	InputLength    int
	NodeCount      int
	Version        string
	ContextIRI     string
	IBEIRI         string
	ParserAgentIRI string
	Truncated      bool
}

// DebugTrace is the additive debug payload from SPEC_FULL §11: wall-clock
// durations plus, per sentence, the parser's chosen transition sequence.
// StageDurations holds three entries: "tag", "parse" (the last sentence
// parsed only) and "total"; no other stage is timed. Only populated when
// BuildOptions.Debug is set.
type DebugTrace struct {
	StageDurations      map[string]time.Duration
	SentenceTransitions [][]string // one slice of transition names per sentence, in sentence order
}

// AmbiguitySignal is one ambiguity observation surfaced when
// BuildOptions.DetectAmbiguity is set (spec §4.17 step 13).
type AmbiguitySignal struct {
	NodeIRI string
	Kind    string // selectional_mismatch | low_confidence | scope | metonymy
	Detail  string
}

// AmbiguityReport collects every signal observed during a build.
type AmbiguityReport struct {
	Signals []AmbiguitySignal
}

// BuildResult is the full return value of Builder.Build: the graph, its
// metadata, and the two optional payloads (spec §6).
type BuildResult struct {
	Graph           *semgraph.Graph
	Metadata        Metadata
	Debug           *DebugTrace
	AmbiguityReport *AmbiguityReport
}
