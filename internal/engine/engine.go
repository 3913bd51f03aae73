// Package engine defines the narrow contract between the harness and
// the external analysis engine. The harness never inspects engine
// internals: it hands over one document plus configuration and reads
// back diagnostics, code actions and (optionally) completions.
// Version skew between engine releases is the adapter implementation's
// problem; nothing in this contract depends on it.
package engine

import (
	"context"

	"lintkit/internal/diag"
	"lintkit/internal/source"
)

// Config carries per-run engine configuration.
type Config struct {
	// MaxDiagnostics caps how many diagnostics one run may report.
	MaxDiagnostics int
	// Params are opaque component-specific settings.
	Params map[string]string
}

// DefaultMaxDiagnostics applies when Config.MaxDiagnostics is zero.
const DefaultMaxDiagnostics = 100

// Engine compiles a single document into a Compilation ready to run
// the components under test. Implementations must be deterministic for
// fixed input and must honor ctx cancellation.
type Engine interface {
	Compile(ctx context.Context, doc *source.File, cfg Config) (Compilation, error)
}

// Compilation is a disposable, per-run analysis session over one
// document. Close releases whatever the engine allocated; the runner
// guarantees it is called on every exit path.
type Compilation interface {
	// Diagnostics executes the attached analyzers and returns their
	// findings. The slice is owned by the caller.
	Diagnostics(ctx context.Context) ([]diag.Diagnostic, error)

	// CodeActions returns the candidate actions the fix or refactoring
	// provider offers for the given diagnostic ID (empty ID for
	// refactorings, which need no triggering diagnostic). Order must
	// mirror the order the provider produced them.
	CodeActions(ctx context.Context, diagnosticID string) ([]CodeAction, error)

	Close() error
}

// CodeAction is an opaque transformation offered by a provider. Apply
// returns the complete transformed document text.
type CodeAction interface {
	Title() string
	Apply(ctx context.Context) (string, error)
}

// CompletionItem is one entry offered by a completion provider.
type CompletionItem struct {
	Label  string
	Detail string
}

// CompletionProvider is an optional Compilation capability. A
// compilation that does not implement it cannot serve completion
// checks.
type CompletionProvider interface {
	Completions(ctx context.Context, offset int) ([]CompletionItem, error)
}
