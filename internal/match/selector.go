package match

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lintkit/internal/engine"
	"lintkit/internal/run"
	"lintkit/internal/textdiff"
)

// Selector narrows a list of offered code actions down to the one to
// apply. A nil Selector stands for the default policy: exactly one
// candidate must exist.
type Selector interface {
	Criteria() string
	matches(index int, action engine.CodeAction) bool
}

// ByTitle selects the action whose title equals title exactly.
func ByTitle(title string) Selector {
	return titleSelector{title: title, exact: true}
}

// ByTitleSubstring selects the action whose title contains sub.
func ByTitleSubstring(sub string) Selector {
	return titleSelector{title: sub}
}

type titleSelector struct {
	title string
	exact bool
}

func (s titleSelector) Criteria() string {
	if s.exact {
		return fmt.Sprintf("title == %q", s.title)
	}
	return fmt.Sprintf("title contains %q", s.title)
}

func (s titleSelector) matches(_ int, action engine.CodeAction) bool {
	if s.exact {
		return action.Title() == s.title
	}
	return strings.Contains(action.Title(), s.title)
}

// ByIndex selects the i-th offered action (0-based, engine order).
func ByIndex(i int) Selector {
	return indexSelector(i)
}

type indexSelector int

func (s indexSelector) Criteria() string {
	return fmt.Sprintf("index %d", int(s))
}

func (s indexSelector) matches(index int, _ engine.CodeAction) bool {
	return index == int(s)
}

// SelectAction applies sel (or the default single-candidate policy) to
// the offered actions. Zero matches yield *NoActionError, more than
// one *AmbiguousActionError; both list the offered titles.
func SelectAction(actions []engine.CodeAction, sel Selector) (engine.CodeAction, error) {
	titles := make([]string, len(actions))
	for i, a := range actions {
		titles[i] = a.Title()
	}

	if sel == nil {
		switch len(actions) {
		case 0:
			return nil, &NoActionError{Criteria: "default: exactly one candidate", Titles: titles}
		case 1:
			return actions[0], nil
		default:
			return nil, &AmbiguousActionError{Criteria: "default: exactly one candidate, supply a selector", Titles: titles}
		}
	}

	var picked engine.CodeAction
	var pickedTitles []string
	for i, a := range actions {
		if sel.matches(i, a) {
			picked = a
			pickedTitles = append(pickedTitles, a.Title())
		}
	}
	switch len(pickedTitles) {
	case 0:
		return nil, &NoActionError{Criteria: sel.Criteria(), Titles: titles}
	case 1:
		return picked, nil
	default:
		return nil, &AmbiguousActionError{Criteria: sel.Criteria(), Titles: pickedTitles}
	}
}

// ApplyAndCompare selects one action, applies it, and compares the
// transformed text against expected by exact string equality, line
// terminators included. A mismatch yields a *MismatchError carrying the
// rendered diff; a failing apply is a component fault.
func ApplyAndCompare(ctx context.Context, actions []engine.CodeAction, sel Selector, expected string) error {
	action, err := SelectAction(actions, sel)
	if err != nil {
		return err
	}

	actual, err := action.Apply(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return &run.TimedOutError{Err: err}
		}
		return run.Fault(fmt.Sprintf("apply code action %q", action.Title()), err)
	}

	if actual != expected {
		return &MismatchError{
			Expected: expected,
			Actual:   actual,
			Diff:     textdiff.Report(expected, actual, textdiff.RenderOptions{}),
		}
	}
	return nil
}
