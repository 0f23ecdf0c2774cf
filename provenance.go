package semparse

import (
	"strings"
	"time"

	"github.com/textgraph/semparse/internal/semgraph"
)

// buildProvenance adds the IBE/ParserAgent/ParsingAct triple (spec §3,
// §4.17 step 10) after every sentence's nodes are in the graph, then
// retroactively stamps is_concretized_by on every RealWorldEntity, Act,
// and StructuralAssertion node the build produced — the three node
// kinds whose fields carry that marker.
func buildProvenance(graph *semgraph.Graph, text string, version string, opts BuildOptions) {
	outputs := make([]string, 0, graph.Len())
	for _, n := range graph.Nodes() {
		outputs = append(outputs, n.ID())
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ibeIRI := newIRI(opts.Namespace, "IBE", text, now)
	graph.Add(semgraph.IBE{
		Base:       semgraph.Base{IRIValue: ibeIRI, TypeValues: []string{"InformationBearingEntity"}},
		Text:       text,
		CharCount:  len(text),
		WordCount:  len(strings.Fields(text)),
		ReceivedAt: now,
	})

	agentIRI := newIRI(opts.Namespace, "ParserAgent", version)
	graph.Add(semgraph.ParserAgent{
		Base:    semgraph.Base{IRIValue: agentIRI, TypeValues: []string{"ParserAgent"}},
		Version: version,
	})

	actIRI := newIRI(opts.Namespace, "ParsingAct", version, ibeIRI, now)
	graph.Add(semgraph.ParsingAct{
		Base:            semgraph.Base{IRIValue: actIRI, TypeValues: []string{"ParsingAct"}},
		Input:           ibeIRI,
		Agent:           agentIRI,
		Outputs:         outputs,
		ActualityStatus: "Actual",
	})

	for _, iri := range outputs {
		n, ok := graph.Get(iri)
		if !ok {
			continue
		}
		switch node := n.(type) {
		case semgraph.RealWorldEntity:
			node.IsConcretizedBy = actIRI
			graph.Add(node)
		case semgraph.Act:
			node.IsConcretizedBy = actIRI
			graph.Add(node)
		case semgraph.StructuralAssertion:
			node.IsConcretizedBy = actIRI
			graph.Add(node)
		}
	}
}
