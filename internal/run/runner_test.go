package run

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lintkit/internal/diag"
	"lintkit/internal/engine"
	"lintkit/internal/engine/enginetest"
	"lintkit/internal/source"
)

func reportAt(id string, start, end uint32) enginetest.AnalyzeFunc {
	return func(doc *source.File) ([]diag.Diagnostic, error) {
		return []diag.Diagnostic{{
			ID:       id,
			Severity: diag.SevWarning,
			Span:     source.Span{File: doc.ID, Start: start, End: end},
			Message:  "scripted",
		}}, nil
	}
}

func TestRunner_Diagnostics(t *testing.T) {
	eng := &enginetest.Engine{
		Analyzers: []enginetest.AnalyzeFunc{
			reportAt("AA0002", 4, 7),
			reportAt("AA0001", 0, 3),
		},
	}
	r := &Runner{Engine: eng}
	result, err := r.Run(context.Background(), "aaa bbb", DiagnosticCheck{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(result.Diagnostics))
	}
	// The scripted engine sorts its bag; position order is stable.
	if result.Diagnostics[0].ID != "AA0001" || result.Diagnostics[1].ID != "AA0002" {
		t.Errorf("order = %s, %s", result.Diagnostics[0].ID, result.Diagnostics[1].ID)
	}
}

func TestRunner_AnalyzerErrorIsFault(t *testing.T) {
	cause := fmt.Errorf("rule blew up")
	eng := &enginetest.Engine{
		Analyzers: []enginetest.AnalyzeFunc{
			func(doc *source.File) ([]diag.Diagnostic, error) { return nil, cause },
		},
	}
	r := &Runner{Engine: eng}
	_, err := r.Run(context.Background(), "aaa", DiagnosticCheck{})

	var fault *ComponentFaultedError
	if !errors.As(err, &fault) {
		t.Fatalf("error = %v, want *ComponentFaultedError", err)
	}
	if fault.Stage != "diagnostics" {
		t.Errorf("stage = %q, want %q", fault.Stage, "diagnostics")
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause not preserved through Unwrap: %v", err)
	}
}

func TestRunner_PanickingAnalyzerIsFault(t *testing.T) {
	eng := &enginetest.Engine{
		Analyzers: []enginetest.AnalyzeFunc{
			func(doc *source.File) ([]diag.Diagnostic, error) { panic("index out of range") },
		},
	}
	r := &Runner{Engine: eng}
	_, err := r.Run(context.Background(), "aaa", DiagnosticCheck{})

	var fault *ComponentFaultedError
	if !errors.As(err, &fault) {
		t.Fatalf("error = %v, want *ComponentFaultedError", err)
	}
}

func TestRunner_CompileErrorIsFault(t *testing.T) {
	eng := &enginetest.Engine{CompileErr: fmt.Errorf("bad project")}
	r := &Runner{Engine: eng}
	_, err := r.Run(context.Background(), "aaa", DiagnosticCheck{})

	var fault *ComponentFaultedError
	if !errors.As(err, &fault) {
		t.Fatalf("error = %v, want *ComponentFaultedError", err)
	}
	if fault.Stage != "compile" {
		t.Errorf("stage = %q, want %q", fault.Stage, "compile")
	}
}

func TestRunner_Timeout(t *testing.T) {
	// The scripted engine checks the context between analyzers; the
	// first one burns past the deadline, the second never runs.
	eng := &enginetest.Engine{
		Analyzers: []enginetest.AnalyzeFunc{
			func(doc *source.File) ([]diag.Diagnostic, error) {
				time.Sleep(50 * time.Millisecond)
				return nil, nil
			},
			reportAt("AA0001", 0, 1),
		},
	}
	r := &Runner{Engine: eng, Timeout: 10 * time.Millisecond}
	_, err := r.Run(context.Background(), "aaa", DiagnosticCheck{})

	var timedOut *TimedOutError
	if !errors.As(err, &timedOut) {
		t.Fatalf("error = %v, want *TimedOutError", err)
	}
	if timedOut.Timeout != 10*time.Millisecond {
		t.Errorf("timeout = %s, want 10ms", timedOut.Timeout)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := &enginetest.Engine{Analyzers: []enginetest.AnalyzeFunc{reportAt("AA0001", 0, 1)}}
	r := &Runner{Engine: eng}
	_, err := r.Run(ctx, "aaa", DiagnosticCheck{})

	var timedOut *TimedOutError
	if !errors.As(err, &timedOut) {
		t.Fatalf("error = %v, want *TimedOutError", err)
	}
	if timedOut.Timeout != 0 {
		t.Errorf("timeout = %s, want 0 for caller cancellation", timedOut.Timeout)
	}
}

func TestRunner_FixActionsKeepEngineOrder(t *testing.T) {
	eng := &enginetest.Engine{
		Actions: func(doc *source.File, diagnosticID string) ([]engine.CodeAction, error) {
			if diagnosticID != "AA0001" {
				return nil, nil
			}
			return []engine.CodeAction{
				enginetest.Action{Name: "first"},
				enginetest.Action{Name: "second"},
			}, nil
		},
	}
	r := &Runner{Engine: eng}
	result, err := r.Run(context.Background(), "aaa", FixApplication{DiagnosticID: "AA0001"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(result.Actions))
	}
	if result.Actions[0].Title() != "first" || result.Actions[1].Title() != "second" {
		t.Errorf("order = %q, %q", result.Actions[0].Title(), result.Actions[1].Title())
	}
}

func TestRunner_RefactoringNeedsNoDiagnostic(t *testing.T) {
	eng := &enginetest.Engine{
		Actions: func(doc *source.File, diagnosticID string) ([]engine.CodeAction, error) {
			if diagnosticID != "" {
				return nil, fmt.Errorf("refactoring invoked with diagnostic id %q", diagnosticID)
			}
			return []engine.CodeAction{enginetest.Action{Name: "extract"}}, nil
		},
	}
	r := &Runner{Engine: eng}
	result, err := r.Run(context.Background(), "aaa", RefactoringApplication{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Actions) != 1 || result.Actions[0].Title() != "extract" {
		t.Errorf("actions = %+v", result.Actions)
	}
}

func TestRunner_Completions(t *testing.T) {
	eng := &enginetest.Engine{
		Complete: func(doc *source.File, offset int) ([]engine.CompletionItem, error) {
			return []engine.CompletionItem{{Label: "OnRun"}, {Label: "OnValidate"}}, nil
		},
	}
	r := &Runner{Engine: eng}
	result, err := r.Run(context.Background(), "aaa", CompletionCheck{Offset: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Completions) != 2 {
		t.Fatalf("got %d completions, want 2", len(result.Completions))
	}
}

func TestRunner_CompletionsWithoutProviderIsFault(t *testing.T) {
	eng := &enginetest.Engine{}
	r := &Runner{Engine: eng}
	_, err := r.Run(context.Background(), "aaa", CompletionCheck{Offset: 0})

	var fault *ComponentFaultedError
	if !errors.As(err, &fault) {
		t.Fatalf("error = %v, want *ComponentFaultedError", err)
	}
}

func TestRunner_Misconfiguration(t *testing.T) {
	t.Run("no engine", func(t *testing.T) {
		r := &Runner{}
		if _, err := r.Run(context.Background(), "aaa", DiagnosticCheck{}); err == nil {
			t.Errorf("Run without engine succeeded")
		}
	})
	t.Run("no task", func(t *testing.T) {
		r := &Runner{Engine: &enginetest.Engine{}}
		if _, err := r.Run(context.Background(), "aaa", nil); err == nil {
			t.Errorf("Run without task succeeded")
		}
	})
}

func TestNewProject(t *testing.T) {
	p := NewProject("table T {}")
	if p.Doc == nil || p.FileSet == nil {
		t.Fatalf("project not fully materialized: %+v", p)
	}
	if string(p.Doc.Content) != "table T {}" {
		t.Errorf("content = %q", p.Doc.Content)
	}
	if p.Doc.Path != DocumentName {
		t.Errorf("path = %q, want %q", p.Doc.Path, DocumentName)
	}
	if p.Doc.Flags&source.FileVirtual == 0 {
		t.Errorf("virtual flag not set")
	}
}
