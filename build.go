package semparse

import (
	"strings"
	"time"

	"github.com/textgraph/semparse/internal/cd"
	"github.com/textgraph/semparse/internal/clause"
	"github.com/textgraph/semparse/internal/confidence"
	"github.com/textgraph/semparse/internal/depparse"
	"github.com/textgraph/semparse/internal/deptree"
	"github.com/textgraph/semparse/internal/extract"
	"github.com/textgraph/semparse/internal/mode"
	"github.com/textgraph/semparse/internal/normalize"
	"github.com/textgraph/semparse/internal/postag"
	"github.com/textgraph/semparse/internal/semgraph"
	"github.com/textgraph/semparse/internal/token"
)

// stativeRelationByLemma maps a stative verb lemma to the relation a
// StructuralAssertion asserts between its subject and object (spec
// §4.14's copula/stative routing, §4.17 step 9). "be" variants are
// handled by the copula path instead (they never reach this table: a
// copula's own arc is labeled "cop", so it is never processed as an
// ordinary verb token).
var stativeRelationByLemma = map[string]string{
	"include":    "has_member",
	"comprise":   "has_member",
	"contain":    "has_part",
	"consist":    "has_part",
	"involve":    "has_part",
	"own":        "has_possession",
	"have":       "has_possession",
	"belong":     "has_possession",
	"resemble":   "resembles",
	"represent":  "represents",
	"constitute": "constitutes",
	"equal":      "is_equal_to",
}

// scarcityAdjectives are the quantifier adjectives ExtractScarcity
// gates separately from ordinary descriptive qualities.
var scarcityAdjectives = map[string]bool{
	"few": true, "several": true, "some": true, "many": true,
	"scarce": true, "rare": true, "limited": true, "abundant": true,
}

func modalWordFor(modality string) string {
	switch modality {
	case extract.ModalityObligation:
		return "must"
	case extract.ModalityObligationWeak:
		return "should"
	case extract.ModalityPermission:
		return "may"
	case extract.ModalityProhibition:
		return "must not"
	case extract.ModalityIntention:
		return "will"
	}
	return ""
}

// sentenceState carries everything step 7-12 of the orchestration needs
// once entities and acts for one sentence have been built.
type sentenceState struct {
	tokens []token.Token
	tags   []string
	lemmas []string
	tree   *deptree.DepTree
	ann    []confidence.AnnotatedArc

	entityIRIByHead  map[int]string
	actIRIByVerb     map[int]string
	actualityByVerb  map[int]string
	structuralVerbs  map[int]bool // verb tokens routed to StructuralAssertion instead of Act
	roles            []extract.Role
}

// Build converts text into a typed semantic graph (spec §3, §4.17). The
// Builder must already have a POS model and a dependency model loaded;
// every other registry (calibration, gazetteer, domain config) is
// optional and degrades gracefully when absent.
func (b *Builder) Build(text string, opts BuildOptions) (*BuildResult, error) {
	stageStart := time.Now()
	var debug *DebugTrace
	if opts.Debug {
		debug = &DebugTrace{StageDurations: make(map[string]time.Duration)}
	}
	mark := func(stage string, since time.Time) {
		if debug != nil {
			debug.StageDurations[stage] = time.Since(since)
		}
	}

	if opts.Namespace == "" {
		opts.Namespace = "inst"
	}

	if strings.TrimSpace(text) == "" || (opts.Budget != nil && opts.Budget.MaxInputLen > 0 && len(text) > opts.Budget.MaxInputLen) {
		return &BuildResult{
			Graph: semgraph.NewGraph(),
			Metadata: Metadata{
				BuildTimestamp: time.Now().UTC().Format(time.RFC3339),
				InputLength:    len(text),
				Version:        b.version,
			},
		}, BuildError{Kind: KindInputValidation, Stage: "validate", Message: "input is empty or exceeds the configured budget"}
	}

	if b.posModel == nil || b.depModel == nil {
		return nil, BuildError{Kind: KindModelMissing, Stage: "loadModels", Message: "POS and dependency models must be loaded before Build"}
	}

	normalized := normalize.Normalize(text)
	tokens := token.Tokenize(normalized)
	tags := postagTag(b, tokens, mark)
	lemmas := make([]string, len(tokens))
	for i, t := range tokens {
		lemmas[i] = extract.Lemmatize(t.Text)
	}

	graph := semgraph.NewGraph()
	var ambiguitySignals []AmbiguitySignal
	var sentenceTransitions [][]string
	truncated := false

	bounds := sentenceBoundaries(tokens)
	start := 0
sentenceLoop:
	for _, end := range bounds {
		sentTokens := tokens[start:end]
		sentTags := tags[start:end]
		sentLemmas := lemmas[start:end]
		start = end
		if len(sentTokens) == 0 {
			continue
		}

		parseStart := time.Now()
		var arcs []deptree.Arc
		var trace []string
		if opts.Debug {
			arcs, trace = depparse.ParseWithTrace(b.depModel, sentTokens, sentTags)
			sentenceTransitions = append(sentenceTransitions, trace)
		} else {
			arcs = depparse.Parse(b.depModel, sentTokens, sentTags)
		}
		arcs = depparse.CorrectArcs(arcs, sentTokens, sentTags, sentLemmas)
		tree := deptree.New(arcs, len(sentTokens))
		ann := confidence.Annotate(b.calibration, tree.Arcs())
		mark("parse", parseStart)

		st := &sentenceState{
			tokens:          sentTokens,
			tags:            sentTags,
			lemmas:          sentLemmas,
			tree:            tree,
			ann:             ann,
			entityIRIByHead: make(map[int]string),
			actIRIByVerb:    make(map[int]string),
			actualityByVerb: make(map[int]string),
			structuralVerbs: make(map[int]bool),
		}

		// Step 1: sentence-mode traffic cop.
		greedyNER := opts.GreedyNER
		if opts.EnableTrafficCop {
			mainVerbs := mode.MainVerbs(tree, sentTags)
			var classes []mode.VerbClass
			for _, v := range mainVerbs {
				lemma := sentLemmas[v-1]
				followedByTo := v < len(sentTokens) && strings.ToLower(sentTokens[v].Text) == "to"
				underModal := false
				for _, a := range tree.ChildrenWithLabel(v, "aux") {
					if a.Dependent-1 >= 0 && a.Dependent-1 < len(sentTokens) {
						underModal = underModal || modalWordOf(sentTokens[a.Dependent-1].Text)
					}
				}
				classes = append(classes, mode.ClassifyVerb(lemma, followedByTo, underModal))
			}
			mode.Classify(classes)
			if len(mainVerbs) > 0 {
				v := mainVerbs[0]
				if v < len(sentTokens) {
					_, autoEnable := mode.ObjectComplexity(sentTokens[v:], sentTags[v:])
					if autoEnable {
						greedyNER = true
					}
				}
			}
		}

		// Step 2: clause segmentation (v2 optional — used here only for
		// step 9's clause-relation node, entity/act extraction still runs
		// over the whole sentence).
		seg := clause.Segment(sentTokens, sentTags, tree)

		// Step 3: entity extraction.
		var entities []extract.Entity
		if opts.ExtractEntities {
			entities = extract.ExtractEntities(sentTokens, sentTags, sentLemmas, tree, b.gazetteer)
		}

		// Step 4: greedy NER / Complex Designator detection, shadow
		// suppression of overlapping entities.
		var cdSpans []cd.Span
		if greedyNER {
			cdSpans = cd.Detect(sentTokens)
			entities = cd.Suppress(entities, func(e extract.Entity) (int, int) {
				return entitySpan(sentTokens, e)
			}, cdSpans)
		}
		cdContains := func(charStart, charEnd int) bool {
			for _, s := range cdSpans {
				if cd.Overlaps(charStart, charEnd, s.StartChar, s.EndChar) {
					return true
				}
			}
			return false
		}

		// Step 5: anaphoric links for relative clauses — a relative
		// pronoun (who/which/that) that is itself an nsubj/nsubj:pass/obj
		// of an acl:relcl verb corefers with the antecedent noun the
		// clause modifies, rather than denoting a fresh entity.
		anaphora := anaphoraLinks(tree, sentTokens, sentTags)

		// Entities become a Tier-1/Tier-2 pair, except anaphoric
		// pronouns, which reuse their antecedent's Tier-2 IRI.
		buildEntityNodes(graph, st, entities, anaphora, cdSpans, opts)

		// Conjunct aggregation (spec §4.13 aggregates).
		if opts.CreateAggregates {
			buildAggregates(graph, st, entities, tree, opts)
		}

		// Quality/scarcity extraction per entity.
		if opts.ExtractQualities || opts.ExtractScarcity {
			buildQualities(graph, st, entities, tree, sentTokens, sentTags, opts)
		}

		// Step 6: act extraction, suppressing verbs inside CD spans.
		var acts []extract.Act
		if opts.ExtractActs {
			acts = extract.ExtractActs(sentTokens, sentTags, sentLemmas, tree, cdContains)
		}

		classifyStructuralVerbs(st, acts, tree)

		// Roles are only mapped over acts that remain real Acts (spec I5:
		// stative assertions carry no agent/patient role).
		var realActs []extract.Act
		for _, a := range acts {
			if !st.structuralVerbs[a.VerbToken] {
				realActs = append(realActs, a)
			}
		}
		if opts.DetectRoles {
			st.roles = extract.MapRoles(sentTokens, sentLemmas, tree, realActs)
		}

		// Step 9: StructuralAssertion nodes for copula and stative verbs.
		buildStructuralAssertions(graph, st, acts, tree, opts)

		// Act nodes (including inference-act retyping) for everything
		// not routed to StructuralAssertion.
		buildActNodes(graph, st, realActs, opts)

		// Step 7: DirectiveContent for modal acts.
		if opts.ExtractDirectives {
			buildDirectives(graph, st, realActs, opts)
		}

		// Step 8: Role nodes.
		if opts.DetectRoles {
			buildRoleNodes(graph, st, opts)
		}

		// Step 9 (continued): clause-relation node for a split compound
		// sentence, represented as a StructuralAssertion between the two
		// clauses' primary acts (no dedicated relation-node kind exists
		// in the node model; this reuses StructuralAssertion's generic
		// subject/objects/relation shape instead of inventing a new one).
		if seg.Found && seg.Case != clause.CaseCNoSplit {
			buildClauseRelation(graph, st, seg, opts)
		}

		// Step 12: temporal linking within the sentence.
		linkTemporalRegions(graph, st, entities)

		// Step 13: ambiguity signals.
		if opts.DetectAmbiguity {
			ambiguitySignals = append(ambiguitySignals, selectionalAmbiguitySignals(st, realActs, tree, graph, opts)...)
			ambiguitySignals = append(ambiguitySignals, lowConfidenceSignals(st)...)
		}

		if opts.Budget != nil && opts.Budget.MaxNodes > 0 && graph.Len() > opts.Budget.MaxNodes {
			if opts.Budget.Truncate {
				truncated = true
				break sentenceLoop
			}
			return nil, BuildError{Kind: KindBudgetExceeded, Stage: "build", Message: "node budget exceeded"}
		}
	}

	// Step 10: provenance layer.
	buildProvenance(graph, text, b.version, opts)

	// Step 11: Tier-1 -> Quality linking (aggregates already propagate
	// via their Members field; consumers resolve qualities for a member
	// through the aggregate it belongs to).

	result := &BuildResult{
		Graph: graph,
		Metadata: Metadata{
			BuildTimestamp: time.Now().UTC().Format(time.RFC3339),
			InputLength:    len(text),
			NodeCount:      graph.Len(),
			Version:        b.version,
			Truncated:      truncated,
		},
	}
	if debug != nil {
		debug.SentenceTransitions = sentenceTransitions
		mark("total", stageStart)
		result.Debug = debug
	}
	if opts.DetectAmbiguity {
		result.AmbiguityReport = &AmbiguityReport{Signals: ambiguitySignals}
	}
	return result, nil
}

func postagTag(b *Builder, tokens []token.Token, mark func(string, time.Time)) []string {
	start := time.Now()
	tags := postag.Tag(b.posModel, tokens)
	mark("tag", start)
	return tags
}

func modalWordOf(surface string) bool {
	switch strings.ToLower(surface) {
	case "must", "shall", "should", "ought", "may", "can", "will", "would", "could", "might":
		return true
	}
	return false
}

func entitySpan(tokens []token.Token, e extract.Entity) (int, int) {
	if len(e.Span) == 0 {
		t := tokens[e.HeadToken-1]
		return t.Start, t.End
	}
	start, end := tokens[e.Span[0]-1].Start, tokens[e.Span[0]-1].End
	for _, id := range e.Span {
		if id-1 < 0 || id-1 >= len(tokens) {
			continue
		}
		t := tokens[id-1]
		if t.Start < start {
			start = t.Start
		}
		if t.End > end {
			end = t.End
		}
	}
	return start, end
}

// anaphoraLinks finds relative-clause pronouns (spec §4.17 step 5):
// token ids of a who/which/that pronoun that is itself a nominal
// argument of an acl:relcl verb, mapped to the antecedent noun the
// clause modifies.
func anaphoraLinks(tree *deptree.DepTree, tokens []token.Token, tags []string) map[int]int {
	links := make(map[int]int)
	for id := 1; id <= len(tokens); id++ {
		arc, ok := tree.ArcOf(id)
		if !ok || arc.Label != "acl:relcl" {
			continue
		}
		antecedent, relVerb := arc.Head, arc.Dependent
		for _, child := range tree.ChildrenOf(relVerb) {
			if child.Label != "nsubj" && child.Label != "nsubj:pass" && child.Label != "obj" {
				continue
			}
			if child.Dependent-1 < 0 || child.Dependent-1 >= len(tokens) {
				continue
			}
			word := strings.ToLower(tokens[child.Dependent-1].Text)
			if word == "who" || word == "which" || word == "that" || word == "whom" {
				links[child.Dependent] = antecedent
			}
		}
	}
	return links
}

// referentialStatus classifies a mention's ReferentialStatus field
// (spec §3): anaphoric for pronouns, definite/indefinite by the head's
// determiner, definite for proper nouns with no determiner, generic
// otherwise (a bare noun with no article, e.g. "Organizations" in S5).
func referentialStatus(tree *deptree.DepTree, headToken int, tag string, tokens []token.Token) string {
	if tag == "PRP" || tag == "WP" || tag == "PRP$" {
		return "anaphoric"
	}
	for _, a := range tree.ChildrenWithLabel(headToken, "det") {
		if a.Dependent-1 < 0 || a.Dependent-1 >= len(tokens) {
			continue
		}
		switch strings.ToLower(tokens[a.Dependent-1].Text) {
		case "the":
			return "definite"
		case "a", "an":
			return "indefinite"
		}
	}
	if tag == "NNP" || tag == "NNPS" {
		return "definite"
	}
	return "generic"
}
