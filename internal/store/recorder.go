package store

import (
	"context"

	"github.com/roach88/acceptance/internal/harness"
)

// RunRecorder journals the checks of one run. It implements
// harness.Recorder.
type RunRecorder struct {
	store *Store
	runID string
}

// Recorder begins a run and returns a recorder bound to it.
func (s *Store) Recorder(ctx context.Context, ids RunIDGenerator, info RunInfo) (*RunRecorder, error) {
	id := ids.Generate()
	if _, err := s.BeginRun(ctx, id, info); err != nil {
		return nil, err
	}
	return &RunRecorder{store: s, runID: id}, nil
}

// RunID returns the ID of the run being recorded.
func (r *RunRecorder) RunID() string {
	return r.runID
}

// Record writes c to the journal.
func (r *RunRecorder) Record(ctx context.Context, c harness.Check) error {
	return r.store.WriteCheck(ctx, r.runID, c)
}

// Finish marks the run passed or failed depending on runErr.
func (r *RunRecorder) Finish(ctx context.Context, summary *harness.Summary, runErr error) error {
	status := StatusPassed
	if runErr != nil {
		status = StatusFailed
	}
	var s harness.Summary
	if summary != nil {
		s = *summary
	}
	return r.store.FinishRun(ctx, r.runID, status, s)
}

var _ harness.Recorder = (*RunRecorder)(nil)
