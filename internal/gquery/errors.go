package gquery

import "fmt"

// SyntaxError is the package's typed error, matching the teacher's
// dsl.SyntaxError{Kind, Message} convention.
type SyntaxError struct {
	Kind    string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("gquery: %s: %s", e.Kind, e.Message)
}
