// Package testkit is the assertion surface of the harness: one Case
// ties together the marker parser, the analysis runner, the result
// matcher and the diff renderer, and reports outcomes through a small
// subset of *testing.T. Each case is independent; the flow inside a
// case is strictly Parse -> Run -> Match -> (Diff).
package testkit

import (
	"context"
	"fmt"
	"time"

	"lintkit/internal/engine"
	"lintkit/internal/markup"
	"lintkit/internal/match"
	"lintkit/internal/run"
	"lintkit/internal/version"
)

// TB is the subset of *testing.T the harness reports through.
type TB interface {
	Helper()
	Logf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Skipf(format string, args ...any)
}

// Case is one annotated-snippet test case.
type Case struct {
	// Name labels the case in suite outcomes.
	Name string

	// Markup is the annotated source text.
	Markup string

	// Delimiters override the marker pair; zero value means the default.
	Delimiters markup.Delimiters

	// Engine runs the components under test.
	Engine engine.Engine

	// Config is passed through to the engine.
	Config engine.Config

	// Timeout bounds one full check (run and apply); 0 means unbounded.
	Timeout time.Duration

	// Gate plus MinVersion/MaxVersion decide whether the case applies
	// to the detected component-library version.
	Gate       version.Gate
	MinVersion string
	MaxVersion string
}

// ShouldSkip reports whether the case falls outside its declared
// version range, with a human-readable reason.
func (c *Case) ShouldSkip() (string, bool) {
	if c.MinVersion == "" && c.MaxVersion == "" {
		return "", false
	}
	if c.Gate.Between(c.MinVersion, c.MaxVersion) {
		return "", false
	}
	detected, known := c.Gate.Detected()
	if !known {
		detected = "unknown"
	}
	return fmt.Sprintf("component version %s outside [%s, %s]",
		detected, orAny(c.MinVersion), orAny(c.MaxVersion)), true
}

func orAny(v string) string {
	if v == "" {
		return "any"
	}
	return v
}

// prepared is the parsed, ready-to-run form of a case.
type prepared struct {
	doc     *markup.Document
	project *run.Project
	runner  run.Runner
}

func (c *Case) prepare() (*prepared, error) {
	delims := c.Delimiters
	if delims == (markup.Delimiters{}) {
		delims = markup.Default
	}
	doc, err := markup.ParseWith(c.Markup, delims)
	if err != nil {
		return nil, err
	}
	return &prepared{
		doc:     doc,
		project: run.NewProject(doc.Clean),
		runner:  run.Runner{Engine: c.Engine, Config: c.Config},
	}, nil
}

func (c *Case) caseContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}

// CheckHasDiagnostics verifies that a diagnostic with the given ID is
// reported at every marked span, exactly once per span, and nowhere
// else.
func (c *Case) CheckHasDiagnostics(ctx context.Context, id string) error {
	p, err := c.prepare()
	if err != nil {
		return err
	}
	if len(p.doc.Spans) == 0 {
		return fmt.Errorf("testkit: case %q has no marked spans", c.Name)
	}

	expected := make([]match.Expected, len(p.doc.Spans))
	for i, s := range p.doc.Spans {
		expected[i] = match.Expected{
			ID:      id,
			Locator: match.SpanLocator{Span: s.ToSource(p.project.Doc.ID)},
		}
	}
	return c.checkDiagnostics(ctx, p, expected)
}

// CheckHasDiagnosticsAtLines verifies that a diagnostic with the given
// ID starts on every listed 1-based line, exactly once per line.
func (c *Case) CheckHasDiagnosticsAtLines(ctx context.Context, id string, lines []uint32) error {
	p, err := c.prepare()
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("testkit: case %q lists no lines", c.Name)
	}

	expected := make([]match.Expected, len(lines))
	for i, line := range lines {
		expected[i] = match.Expected{ID: id, Locator: match.LineLocator{Line: line}}
	}
	return c.checkDiagnostics(ctx, p, expected)
}

func (c *Case) checkDiagnostics(ctx context.Context, p *prepared, expected []match.Expected) error {
	ctx, cancel := c.caseContext(ctx)
	defer cancel()

	result, err := p.runner.RunProject(ctx, p.project, run.DiagnosticCheck{})
	if err != nil {
		return err
	}
	return match.HasDiagnosticAtAllMarkers(p.project.FileSet, expected, result.Diagnostics)
}

// CheckNoDiagnostics verifies that no diagnostic with the given ID
// overlaps any marked span.
func (c *Case) CheckNoDiagnostics(ctx context.Context, id string) error {
	p, err := c.prepare()
	if err != nil {
		return err
	}
	if len(p.doc.Spans) == 0 {
		return fmt.Errorf("testkit: case %q has no marked spans", c.Name)
	}

	ctx, cancel := c.caseContext(ctx)
	defer cancel()

	result, err := p.runner.RunProject(ctx, p.project, run.DiagnosticCheck{})
	if err != nil {
		return err
	}
	return match.NoDiagnosticAtAllMarkers(p.project.FileSet, id,
		p.doc.SourceSpans(p.project.Doc.ID), result.Diagnostics)
}

// CheckFix runs the fix provider for diagnosticID, selects one offered
// action (sel may be nil for the exactly-one policy), applies it and
// compares against expected verbatim.
func (c *Case) CheckFix(ctx context.Context, diagnosticID, expected string, sel match.Selector) error {
	p, err := c.prepare()
	if err != nil {
		return err
	}

	ctx, cancel := c.caseContext(ctx)
	defer cancel()

	result, err := p.runner.RunProject(ctx, p.project, run.FixApplication{DiagnosticID: diagnosticID})
	if err != nil {
		return err
	}
	return match.ApplyAndCompare(ctx, result.Actions, sel, expected)
}

// CheckRefactoring is CheckFix for providers that need no triggering
// diagnostic.
func (c *Case) CheckRefactoring(ctx context.Context, expected string, sel match.Selector) error {
	p, err := c.prepare()
	if err != nil {
		return err
	}

	ctx, cancel := c.caseContext(ctx)
	defer cancel()

	result, err := p.runner.RunProject(ctx, p.project, run.RefactoringApplication{})
	if err != nil {
		return err
	}
	return match.ApplyAndCompare(ctx, result.Actions, sel, expected)
}

// CheckCompletions verifies that every wanted label is offered at the
// sole marked position.
func (c *Case) CheckCompletions(ctx context.Context, labels []string) error {
	p, err := c.prepare()
	if err != nil {
		return err
	}
	if len(p.doc.Spans) != 1 {
		return fmt.Errorf("testkit: case %q needs exactly one marker for completions, has %d",
			c.Name, len(p.doc.Spans))
	}

	ctx, cancel := c.caseContext(ctx)
	defer cancel()

	result, err := p.runner.RunProject(ctx, p.project, run.CompletionCheck{Offset: p.doc.Spans[0].Start})
	if err != nil {
		return err
	}
	offered := make([]string, len(result.Completions))
	for i, item := range result.Completions {
		offered[i] = item.Label
	}
	return match.CompletionsContain(offered, labels)
}

// HasDiagnostic is the TB form of CheckHasDiagnostics.
func (c *Case) HasDiagnostic(t TB, id string) {
	t.Helper()
	if c.skipGated(t) {
		return
	}
	c.report(t, c.CheckHasDiagnostics(context.Background(), id))
}

// HasDiagnosticAtLines is the TB form of CheckHasDiagnosticsAtLines.
func (c *Case) HasDiagnosticAtLines(t TB, id string, lines ...uint32) {
	t.Helper()
	if c.skipGated(t) {
		return
	}
	c.report(t, c.CheckHasDiagnosticsAtLines(context.Background(), id, lines))
}

// NoDiagnostic is the TB form of CheckNoDiagnostics.
func (c *Case) NoDiagnostic(t TB, id string) {
	t.Helper()
	if c.skipGated(t) {
		return
	}
	c.report(t, c.CheckNoDiagnostics(context.Background(), id))
}

// FixApplied is the TB form of CheckFix.
func (c *Case) FixApplied(t TB, diagnosticID, expected string, sel match.Selector) {
	t.Helper()
	if c.skipGated(t) {
		return
	}
	c.report(t, c.CheckFix(context.Background(), diagnosticID, expected, sel))
}

// RefactoringApplied is the TB form of CheckRefactoring.
func (c *Case) RefactoringApplied(t TB, expected string, sel match.Selector) {
	t.Helper()
	if c.skipGated(t) {
		return
	}
	c.report(t, c.CheckRefactoring(context.Background(), expected, sel))
}

// CompletionContains is the TB form of CheckCompletions.
func (c *Case) CompletionContains(t TB, labels ...string) {
	t.Helper()
	if c.skipGated(t) {
		return
	}
	c.report(t, c.CheckCompletions(context.Background(), labels))
}

// skipGated skips the case before any engine work when it falls
// outside its declared version range.
func (c *Case) skipGated(t TB) bool {
	t.Helper()
	reason, skip := c.ShouldSkip()
	if skip {
		t.Skipf("%s", reason)
	}
	return skip
}

func (c *Case) report(t TB, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("%s", err)
	}
}
