package harness

import (
	"context"

	"github.com/roach88/acceptance/internal/invoke"
)

// Invoker runs the subject. *invoke.Process implements it.
type Invoker interface {
	Invoke(ctx context.Context, args []string, mode invoke.Mode) (int, error)
}

// Recorder receives every reported check, in order. The run journal
// implements it; a nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, c Check) error
}

// CheckKind distinguishes the two checks a scenario can produce.
type CheckKind string

// CheckKind values.
const (
	KindExec    CheckKind = "exec"
	KindCompare CheckKind = "compare"
)

// Check is one reported line of a run.
type Check struct {
	Seq        int
	Label      string
	Kind       CheckKind
	ScenarioID string
	Passed     bool

	// ExitStatus is the subject's status for exec checks, -1 when it could
	// not be started. Compare checks carry the status of their exec check.
	ExitStatus int
}

// Summary counts what a run executed.
type Summary struct {
	Scenarios int
	Checks    int
}
