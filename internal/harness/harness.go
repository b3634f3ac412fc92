package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/acceptance/internal/catalog"
	"github.com/roach88/acceptance/internal/golden"
	"github.com/roach88/acceptance/internal/invoke"
	"github.com/roach88/acceptance/internal/report"
)

// Runner executes scenarios in order against one subject.
type Runner struct {
	Invoker    Invoker
	Comparator *golden.Comparator
	Reporter   *report.Reporter

	// Recorder is optional.
	Recorder Recorder

	// Vars expands placeholders in each scenario before it runs.
	Vars catalog.Vars

	Logger *slog.Logger
}

// runState is what a run carries from one scenario to the next.
type runState struct {
	summary Summary

	// captured is the content read by the most recent artifact comparison.
	captured    string
	hasCaptured bool
}

// Run executes scenarios in order and stops at the first failing check.
//
// On success it writes the overall success line and returns a nil error.
// On the first failing check it returns a *Failure; the Summary counts what
// ran up to and including the failure.
func (r *Runner) Run(ctx context.Context, scenarios []catalog.Scenario) (*Summary, error) {
	st := &runState{}

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return &st.summary, err
		}
		if err := r.runScenario(ctx, sc, st); err != nil {
			r.cleanupArtifact()
			return &st.summary, err
		}
		r.cleanupArtifact()
	}

	r.Reporter.Passed()
	r.logger().Info("run passed", "scenarios", st.summary.Scenarios, "checks", st.summary.Checks)
	return &st.summary, nil
}

// runScenario runs one scenario: invoke, exec check, stray removal and the
// optional compare check.
func (r *Runner) runScenario(ctx context.Context, sc catalog.Scenario, st *runState) error {
	id, err := sc.ID()
	if err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Label, err)
	}
	exp := r.Vars.Expand(sc)
	st.summary.Scenarios++

	r.logger().Debug("scenario started",
		"label", exp.Label,
		"scenario_id", id,
		"expect", exp.Expect,
		"io", exp.IO,
	)

	status, invokeErr := r.Invoker.Invoke(ctx, exp.Args, modeFor(exp.IO))
	r.removeStrays(exp.Remove)

	passed := invokeErr == nil && outcomeMatches(exp.Expect, status)
	seq, err := r.report(ctx, st, Check{
		Label:      exp.Label,
		Kind:       KindExec,
		ScenarioID: id,
		Passed:     passed,
		ExitStatus: status,
	})
	if err != nil {
		return err
	}
	if !passed {
		return &Failure{
			Seq:   seq,
			Label: exp.Label,
			Err: &InvocationError{
				Args:   exp.Args,
				Expect: exp.Expect,
				Status: status,
				Err:    invokeErr,
			},
		}
	}

	if exp.Golden == nil {
		return nil
	}

	cmpErr := r.compare(exp.Golden, st)
	seq, err = r.report(ctx, st, Check{
		Label:      exp.Golden.Label,
		Kind:       KindCompare,
		ScenarioID: id,
		Passed:     cmpErr == nil,
		ExitStatus: status,
	})
	if err != nil {
		return err
	}
	if cmpErr != nil {
		return &Failure{
			Seq:   seq,
			Label: exp.Golden.Label,
			Err:   cmpErr,
		}
	}
	return nil
}

// compare checks the golden literal against the artifact or the previously
// captured content.
func (r *Runner) compare(g *catalog.Golden, st *runState) error {
	switch g.Source {
	case catalog.SourcePrevious:
		if !st.hasCaptured {
			return &ContentMismatchError{
				Source: g.Source,
				Err:    fmt.Errorf("no content was captured earlier in this run"),
			}
		}
		if err := golden.Compare(st.captured, g.Want); err != nil {
			return &ContentMismatchError{Source: g.Source, Err: err}
		}
		return nil

	default:
		got, err := r.Comparator.CompareFile(r.Vars.Artifact, g.Want)
		var mismatch *golden.MismatchError
		if err == nil || errors.As(err, &mismatch) {
			// The content was read; later "previous" comparisons use it.
			st.captured = got
			st.hasCaptured = true
		}
		if err != nil {
			return &ContentMismatchError{Path: r.Vars.Artifact, Source: catalog.SourceArtifact, Err: err}
		}
		return nil
	}
}

// report writes a check line, hands the check to the recorder and returns
// the sequence number the check received.
func (r *Runner) report(ctx context.Context, st *runState, c Check) (int, error) {
	line := r.Reporter.Report(c.Label, c.Passed)
	c.Seq = line.Seq
	st.summary.Checks++

	if r.Recorder == nil {
		return c.Seq, nil
	}
	if err := r.Recorder.Record(ctx, c); err != nil {
		return c.Seq, fmt.Errorf("failed to record check %d: %w", c.Seq, err)
	}
	return c.Seq, nil
}

// removeStrays deletes files a failing subject may have left behind.
// Paths that do not exist are skipped.
func (r *Runner) removeStrays(paths []string) {
	for _, p := range paths {
		removed, err := r.Comparator.Cleanup(p)
		if err != nil {
			r.logger().Warn("failed to remove stray file", "path", p, "error", err)
			continue
		}
		r.logger().Debug("stray file checked", "path", p, "removed", removed)
	}
}

// cleanupArtifact removes the artifact if the subject produced one.
func (r *Runner) cleanupArtifact() {
	removed, err := r.Comparator.Cleanup(r.Vars.Artifact)
	if err != nil {
		r.logger().Warn("failed to remove artifact", "path", r.Vars.Artifact, "error", err)
		return
	}
	if removed {
		r.logger().Debug("artifact removed", "path", r.Vars.Artifact)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// outcomeMatches applies the exit status contract: success means status 0,
// failure means any other status.
func outcomeMatches(expect catalog.Outcome, status int) bool {
	if expect == catalog.Success {
		return status == 0
	}
	return status != 0
}

func modeFor(m catalog.IOMode) invoke.Mode {
	if m == catalog.Silent {
		return invoke.Silent
	}
	return invoke.Observed
}
