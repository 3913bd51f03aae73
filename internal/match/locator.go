package match

import (
	"fmt"

	"lintkit/internal/diag"
	"lintkit/internal/source"
)

// Locator pins an expected diagnostic to a place in the clean text:
// either an exact span (from an inline marker) or a 1-based line
// number. The two are interchangeable at the matcher boundary.
type Locator interface {
	Matches(d diag.Diagnostic, fs *source.FileSet) bool
	Describe(fs *source.FileSet) string
}

// SpanLocator matches by exact span equality.
type SpanLocator struct {
	Span source.Span
}

func (l SpanLocator) Matches(d diag.Diagnostic, fs *source.FileSet) bool {
	return d.Span == l.Span
}

func (l SpanLocator) Describe(fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("span %s", l.Span)
	}
	start, _ := fs.Resolve(l.Span)
	return fmt.Sprintf("span %d-%d (line %d, col %d)", l.Span.Start, l.Span.End, start.Line, start.Col)
}

// LineLocator matches any diagnostic whose span starts on the given
// 1-based line. It deliberately does not claim exclusivity over other
// lines; it is a convenience locator, not an exhaustiveness assertion.
type LineLocator struct {
	Line uint32
}

func (l LineLocator) Matches(d diag.Diagnostic, fs *source.FileSet) bool {
	if fs == nil {
		return false
	}
	start, _ := fs.Resolve(d.Span)
	return start.Line == l.Line
}

func (l LineLocator) Describe(fs *source.FileSet) string {
	return fmt.Sprintf("line %d", l.Line)
}

// Expected describes one diagnostic a test requires (or, for the
// no-diagnostic protocol, the rule under suspicion).
type Expected struct {
	ID      string
	Locator Locator
	Message string // optional; empty matches any message
}
