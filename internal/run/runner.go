// Package run drives the external analysis engine for one test case:
// it materializes the clean text as the sole document of a disposable
// project, executes one task against it, and surfaces component
// failures and timeouts as typed errors. The sequence inside a case is
// strictly sequential; determinism of offsets and ordering is part of
// the contract.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lintkit/internal/engine"
	"lintkit/internal/source"
)

// DocumentName is the path given to the per-case virtual document.
const DocumentName = "case"

// Runner executes tasks against an engine. The zero value is unusable;
// Engine must be set.
type Runner struct {
	Engine  engine.Engine
	Config  engine.Config
	Timeout time.Duration // 0 means no deadline beyond the caller's ctx
}

// Project is the disposable per-case document container. It exists for
// exactly one run and is released with the compilation.
type Project struct {
	FileSet *source.FileSet
	Doc     *source.File
}

// NewProject materializes cleanText as a single virtual document.
func NewProject(cleanText string) *Project {
	fs := source.NewFileSet()
	id := fs.AddVirtual(DocumentName, []byte(cleanText))
	return &Project{FileSet: fs, Doc: fs.Get(id)}
}

// Run materializes cleanText as a fresh project and executes task
// against it.
func (r *Runner) Run(ctx context.Context, cleanText string, task Task) (*Result, error) {
	return r.RunProject(ctx, NewProject(cleanText), task)
}

// RunProject compiles the project's document and executes task. Errors
// raised from within the component under test (including panics) come
// back as *ComponentFaultedError; cancellation and deadline expiry as
// *TimedOutError. The compilation is closed on every path.
func (r *Runner) RunProject(ctx context.Context, project *Project, task Task) (*Result, error) {
	if r.Engine == nil {
		return nil, fmt.Errorf("run: no engine configured")
	}
	if task == nil {
		return nil, fmt.Errorf("run: no task given")
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	comp, err := r.Engine.Compile(ctx, project.Doc, r.Config)
	if err != nil {
		return nil, r.classify("compile", err)
	}
	defer comp.Close() //nolint:errcheck // release is best-effort on the error path

	result, err := execute(ctx, comp, task)
	if err != nil {
		return nil, r.classify(task.Describe(), err)
	}
	return result, nil
}

// execute runs the task with a panic guard: a panicking component is a
// faulted component, not a crashed harness.
func execute(ctx context.Context, comp engine.Compilation, task Task) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return task.run(ctx, comp)
}

func (r *Runner) classify(stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TimedOutError{Timeout: r.Timeout, Err: err}
	}
	return Fault(stage, err)
}
