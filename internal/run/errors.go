package run

import (
	"fmt"
	"time"
)

// ComponentFaultedError wraps an unexpected failure (error or panic)
// raised from within the component under test. It is never folded into
// "no diagnostics": a crashing analyzer is a broken analyzer, not a
// quiet one.
type ComponentFaultedError struct {
	Stage string // which operation was executing
	Err   error  // original cause, preserved
}

func (e *ComponentFaultedError) Error() string {
	return fmt.Sprintf("component faulted during %s: %v", e.Stage, e.Err)
}

func (e *ComponentFaultedError) Unwrap() error {
	return e.Err
}

// Fault wraps err as a component fault for the given stage.
func Fault(stage string, err error) *ComponentFaultedError {
	return &ComponentFaultedError{Stage: stage, Err: err}
}

// TimedOutError reports that a run was cancelled or exceeded its
// deadline. It is a test failure, never a hang.
type TimedOutError struct {
	Timeout time.Duration // 0 when cancellation came from the caller's ctx
	Err     error
}

func (e *TimedOutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("analysis run timed out after %s: %v", e.Timeout, e.Err)
	}
	return fmt.Sprintf("analysis run cancelled: %v", e.Err)
}

func (e *TimedOutError) Unwrap() error {
	return e.Err
}
