package testkit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Check is one named, self-contained verification. Checks share no
// mutable state, so a suite may run them concurrently.
type Check struct {
	Name string
	// Skip, when set, is consulted before Run.
	Skip func() (reason string, skip bool)
	Run  func(ctx context.Context) error
}

// Outcome is the result of one suite check.
type Outcome struct {
	Name    string
	Skipped bool
	Reason  string // skip reason
	Err     error  // nil on pass
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return !o.Skipped && o.Err != nil
}

// Suite runs independent checks, optionally in parallel.
type Suite struct {
	Checks []Check
	// Jobs limits concurrency; values < 1 mean sequential.
	Jobs int
}

// Run executes all checks and returns one outcome per check, in input
// order. A failing check never cancels its siblings: failures are
// outcomes, not errors. Cancellation of ctx stops scheduling and is
// recorded on the remaining checks.
func (s *Suite) Run(ctx context.Context) []Outcome {
	outcomes := make([]Outcome, len(s.Checks))

	jobs := s.Jobs
	if jobs < 1 {
		jobs = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, check := range s.Checks {
		outcomes[i].Name = check.Name
		g.Go(func() error {
			if check.Skip != nil {
				if reason, skip := check.Skip(); skip {
					outcomes[i].Skipped = true
					outcomes[i].Reason = reason
					return nil
				}
			}
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Err = check.Run(ctx)
			return nil
		})
	}

	// Errors are recorded per-outcome; Wait only joins the workers.
	_ = g.Wait()
	return outcomes
}

// CaseCheck adapts a gated case operation into a suite check, turning
// a version-gate skip into a skipped outcome.
func CaseCheck(c *Case, op func(ctx context.Context) error) Check {
	return Check{
		Name: c.Name,
		Skip: c.ShouldSkip,
		Run:  op,
	}
}
