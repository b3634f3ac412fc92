package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/acceptance/internal/catalog"
	"github.com/roach88/acceptance/internal/golden"
)

// InvocationError reports an exit status outside the expected class, or a
// subject that could not be started.
type InvocationError struct {
	Args   []string
	Expect catalog.Outcome
	Status int
	Err    error // set when the subject could not be started
}

func (e *InvocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("subject could not be started: %v", e.Err)
	}
	return fmt.Sprintf("expected %s, subject exited with status %d (args: %s)",
		e.Expect, e.Status, strings.Join(e.Args, " "))
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// ContentMismatchError reports an artifact that could not be read or whose
// content differs from the golden literal.
type ContentMismatchError struct {
	Path   string
	Source catalog.GoldenSource
	Err    error
}

func (e *ContentMismatchError) Error() string {
	if e.Source == catalog.SourcePrevious {
		return fmt.Sprintf("previous artifact content: %v", e.Err)
	}
	return fmt.Sprintf("artifact %s: %v", e.Path, e.Err)
}

func (e *ContentMismatchError) Unwrap() error {
	return e.Err
}

// Diff returns a -want +got diff when the content was read but differs.
func (e *ContentMismatchError) Diff() string {
	var mismatch *golden.MismatchError
	if errors.As(e.Err, &mismatch) {
		return mismatch.Diff()
	}
	return ""
}

// Failure is the first failing check of a run.
type Failure struct {
	Seq   int
	Label string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("check %d (%s) failed: %v", f.Seq, f.Label, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
