package domainconfig

import "fmt"

// ConfigError is the package's typed error, following the teacher's
// per-package Kind+Message convention (graph.GraphError, query.QueryError).
type ConfigError struct {
	Kind    string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("domainconfig: %s: %s", e.Kind, e.Message)
}

const (
	KindSourceRead   = "SourceRead"
	KindParseFailure = "ParseFailure"
	KindEmptySources = "EmptySources"
)
