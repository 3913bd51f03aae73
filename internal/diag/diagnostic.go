package diag

import (
	"lintkit/internal/source"
)

// Diagnostic is one finding reported by a component under test.
// ID is the rule identifier in the component's own namespace
// (for example "AA0137"); Span locates the finding in the clean text.
type Diagnostic struct {
	ID       string
	Severity Severity
	Span     source.Span
	Message  string
}

// FilterID returns the diagnostics whose ID equals id, preserving order.
func FilterID(items []Diagnostic, id string) []Diagnostic {
	out := make([]Diagnostic, 0, len(items))
	for _, d := range items {
		if d.ID == id {
			out = append(out, d)
		}
	}
	return out
}
