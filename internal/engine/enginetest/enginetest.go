// Package enginetest provides a scripted in-memory engine used to test
// the harness itself. Analyzers, action providers and completion
// providers are plain functions over the document content, so a test
// can stage any engine behavior, including faults and hangs.
package enginetest

import (
	"context"
	"fmt"

	"lintkit/internal/diag"
	"lintkit/internal/engine"
	"lintkit/internal/source"
)

// AnalyzeFunc produces diagnostics for a document.
type AnalyzeFunc func(doc *source.File) ([]diag.Diagnostic, error)

// ActionsFunc produces candidate actions for a diagnostic ID.
type ActionsFunc func(doc *source.File, diagnosticID string) ([]engine.CodeAction, error)

// CompleteFunc produces completion items at an offset.
type CompleteFunc func(doc *source.File, offset int) ([]engine.CompletionItem, error)

// Engine is a scripted engine.Engine.
type Engine struct {
	Analyzers []AnalyzeFunc
	Actions   ActionsFunc
	Complete  CompleteFunc

	// CompileErr, when set, fails Compile itself.
	CompileErr error
}

var _ engine.Engine = (*Engine)(nil)

// Compile snapshots the scripted behavior into a compilation over doc.
func (e *Engine) Compile(ctx context.Context, doc *source.File, cfg Config) (engine.Compilation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.CompileErr != nil {
		return nil, e.CompileErr
	}
	max := cfg.MaxDiagnostics
	if max <= 0 {
		max = engine.DefaultMaxDiagnostics
	}
	return &compilation{engine: e, doc: doc, max: max}, nil
}

// Config aliases engine.Config so call sites read naturally.
type Config = engine.Config

type compilation struct {
	engine *Engine
	doc    *source.File
	max    int
	closed bool
}

var _ engine.CompletionProvider = (*compilation)(nil)

func (c *compilation) Diagnostics(ctx context.Context) ([]diag.Diagnostic, error) {
	bag := diag.NewBag(c.max)
	for _, analyze := range c.engine.Analyzers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := analyze(c.doc)
		if err != nil {
			return nil, err
		}
		for _, d := range items {
			bag.Add(d)
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag.Items(), nil
}

func (c *compilation) CodeActions(ctx context.Context, diagnosticID string) ([]engine.CodeAction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.engine.Actions == nil {
		return nil, nil
	}
	return c.engine.Actions(c.doc, diagnosticID)
}

func (c *compilation) Completions(ctx context.Context, offset int) ([]engine.CompletionItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.engine.Complete == nil {
		return nil, fmt.Errorf("enginetest: no completion provider staged")
	}
	return c.engine.Complete(c.doc, offset)
}

func (c *compilation) Close() error {
	c.closed = true
	return nil
}

// Action is a ready-made engine.CodeAction producing a fixed result.
type Action struct {
	Name   string
	Result string
	Err    error
}

var _ engine.CodeAction = Action{}

func (a Action) Title() string { return a.Name }

func (a Action) Apply(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.Result, a.Err
}

// Blocking is an engine.CodeAction that never finishes before ctx does;
// tests use it to exercise timeout propagation.
type Blocking struct {
	Name string
}

var _ engine.CodeAction = Blocking{}

func (b Blocking) Title() string { return b.Name }

func (b Blocking) Apply(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
