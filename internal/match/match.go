// Package match reconciles the raw results of an analysis run against
// the declared expectations: diagnostic presence/absence at spans or
// lines, code-action selection, and transformed-text comparison. All
// failures are expected, first-class test outcomes carried by typed
// errors; every problem found in a pass is collected before reporting.
package match

import (
	"fmt"

	"lintkit/internal/diag"
	"lintkit/internal/source"
)

// HasDiagnosticAtAllMarkers checks that every expectation is consumed
// by exactly one actual diagnostic with the same ID at the expected
// location, and that no further diagnostics with an expected ID exist
// elsewhere. Returns nil on success or an *ExpectationError listing
// every unmatched expectation and every unexpected diagnostic.
func HasDiagnosticAtAllMarkers(fs *source.FileSet, expected []Expected, actual []diag.Diagnostic) error {
	if len(expected) == 0 {
		return fmt.Errorf("match: no expectations given")
	}

	consumed := make([]bool, len(actual))
	var problems []Problem

	for _, exp := range expected {
		found := false
		for i, act := range actual {
			if consumed[i] || act.ID != exp.ID {
				continue
			}
			if !exp.Locator.Matches(act, fs) {
				continue
			}
			if exp.Message != "" && exp.Message != act.Message {
				continue
			}
			consumed[i] = true
			found = true
			break
		}
		if !found {
			detail := fmt.Sprintf("expected diagnostic %s at %s, but none was reported",
				exp.ID, exp.Locator.Describe(fs))
			if exp.Message != "" {
				detail += fmt.Sprintf(" with message %q", exp.Message)
			}
			problems = append(problems, Problem{Detail: detail})
		}
	}

	// Leftover diagnostics carrying an expected ID are failures too:
	// the component fired somewhere the fixture did not mark.
	expectedIDs := make(map[string]bool, len(expected))
	for _, exp := range expected {
		expectedIDs[exp.ID] = true
	}
	for i, act := range actual {
		if consumed[i] || !expectedIDs[act.ID] {
			continue
		}
		problems = append(problems, Problem{
			Detail: fmt.Sprintf("unexpected diagnostic %s at %s: %s",
				act.ID, describeSpan(act.Span, fs), act.Message),
		})
	}

	if len(problems) > 0 {
		return &ExpectationError{Problems: problems}
	}
	return nil
}

// NoDiagnosticAtAllMarkers checks that no actual diagnostic with the
// given ID overlaps any of the marked spans. Every offending
// diagnostic is reported.
func NoDiagnosticAtAllMarkers(fs *source.FileSet, id string, spans []source.Span, actual []diag.Diagnostic) error {
	if len(spans) == 0 {
		return fmt.Errorf("match: no spans given")
	}

	var problems []Problem
	for _, act := range diag.FilterID(actual, id) {
		for _, span := range spans {
			if !act.Span.Overlaps(span) {
				continue
			}
			problems = append(problems, Problem{
				Detail: fmt.Sprintf("diagnostic %s reported at %s overlapping marked %s: %s",
					id, describeSpan(act.Span, fs), describeSpan(span, fs), act.Message),
			})
			break
		}
	}

	if len(problems) > 0 {
		return &ExpectationError{Problems: problems}
	}
	return nil
}

// CompletionsContain checks that every wanted label is present among
// the offered items, reporting all missing labels at once.
func CompletionsContain(offered []string, wanted []string) error {
	if len(wanted) == 0 {
		return fmt.Errorf("match: no completion labels given")
	}
	have := make(map[string]bool, len(offered))
	for _, label := range offered {
		have[label] = true
	}
	var problems []Problem
	for _, label := range wanted {
		if !have[label] {
			problems = append(problems, Problem{
				Detail: fmt.Sprintf("expected completion %q was not offered", label),
			})
		}
	}
	if len(problems) > 0 {
		return &ExpectationError{Problems: problems}
	}
	return nil
}

func describeSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("span %s", span)
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("span %d-%d (line %d, col %d)", span.Start, span.End, start.Line, start.Col)
}
