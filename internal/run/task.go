package run

import (
	"context"
	"fmt"

	"lintkit/internal/diag"
	"lintkit/internal/engine"
)

// Result is the raw outcome of one analysis run. Exactly the fields
// relevant to the executed task are populated.
type Result struct {
	Diagnostics []diag.Diagnostic
	Actions     []engine.CodeAction
	Completions []engine.CompletionItem
}

// Task is one of the closed set of run kinds. Each kind knows how to
// drive a compilation and what to collect from it.
type Task interface {
	// Describe names the task for error reports.
	Describe() string
	run(ctx context.Context, comp engine.Compilation) (*Result, error)
}

// DiagnosticCheck runs the attached analyzers and collects all their
// diagnostics.
type DiagnosticCheck struct{}

func (DiagnosticCheck) Describe() string { return "diagnostics" }

func (DiagnosticCheck) run(ctx context.Context, comp engine.Compilation) (*Result, error) {
	items, err := comp.Diagnostics(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Diagnostics: items}, nil
}

// FixApplication collects the code actions offered for the diagnostic
// that triggers the fix under test. Action order mirrors the engine's.
type FixApplication struct {
	DiagnosticID string
}

func (t FixApplication) Describe() string {
	return fmt.Sprintf("code fix for %s", t.DiagnosticID)
}

func (t FixApplication) run(ctx context.Context, comp engine.Compilation) (*Result, error) {
	actions, err := comp.CodeActions(ctx, t.DiagnosticID)
	if err != nil {
		return nil, err
	}
	return &Result{Actions: actions}, nil
}

// RefactoringApplication collects the actions a refactoring provider
// offers; refactorings need no triggering diagnostic.
type RefactoringApplication struct{}

func (RefactoringApplication) Describe() string { return "refactoring" }

func (RefactoringApplication) run(ctx context.Context, comp engine.Compilation) (*Result, error) {
	actions, err := comp.CodeActions(ctx, "")
	if err != nil {
		return nil, err
	}
	return &Result{Actions: actions}, nil
}

// CompletionCheck collects completion items at a clean-text offset.
type CompletionCheck struct {
	Offset int
}

func (t CompletionCheck) Describe() string {
	return fmt.Sprintf("completions at offset %d", t.Offset)
}

func (t CompletionCheck) run(ctx context.Context, comp engine.Compilation) (*Result, error) {
	provider, ok := comp.(engine.CompletionProvider)
	if !ok {
		return nil, fmt.Errorf("engine compilation offers no completion provider")
	}
	items, err := provider.Completions(ctx, t.Offset)
	if err != nil {
		return nil, err
	}
	return &Result{Completions: items}, nil
}
