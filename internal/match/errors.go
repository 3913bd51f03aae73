package match

import (
	"fmt"
	"strings"
)

// Problem is one individually-reported matching failure. All problems
// found in a matching pass are collected before reporting, so a fixture
// can be repaired in one round-trip.
type Problem struct {
	Detail string
}

// ExpectationError reports a wrong count or location of diagnostics.
type ExpectationError struct {
	Problems []Problem
}

func (e *ExpectationError) Error() string {
	if len(e.Problems) == 1 {
		return "expectation not met: " + e.Problems[0].Detail
	}
	var b strings.Builder
	fmt.Fprintf(&b, "expectation not met (%d problems):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.Detail)
	}
	return b.String()
}

// AmbiguousActionError reports that more than one code action was
// offered and the selection criteria did not narrow it to one.
type AmbiguousActionError struct {
	Criteria string
	Titles   []string
}

func (e *AmbiguousActionError) Error() string {
	return fmt.Sprintf("ambiguous code action (%s): candidates are %s",
		e.Criteria, quoteAll(e.Titles))
}

// NoActionError reports that the selection criteria matched zero of the
// offered code actions.
type NoActionError struct {
	Criteria string
	Titles   []string
}

func (e *NoActionError) Error() string {
	if len(e.Titles) == 0 {
		return fmt.Sprintf("no applicable code action (%s): none were offered", e.Criteria)
	}
	return fmt.Sprintf("no applicable code action (%s): offered were %s",
		e.Criteria, quoteAll(e.Titles))
}

// MismatchError reports that the transformed text differs from the
// expected text. Diff carries the full rendered report.
type MismatchError struct {
	Expected string
	Actual   string
	Diff     string
}

func (e *MismatchError) Error() string {
	return "transformed code differs from expected:\n" + e.Diff
}

func quoteAll(titles []string) string {
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}
