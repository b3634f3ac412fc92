package store

import (
	"context"
	"fmt"

	"github.com/roach88/acceptance/internal/harness"
)

// RunStatus is the lifecycle state of a journaled run.
type RunStatus string

// RunStatus values.
const (
	StatusRunning RunStatus = "running"
	StatusPassed  RunStatus = "passed"
	StatusFailed  RunStatus = "failed"
)

// RunInfo describes a run as it begins.
type RunInfo struct {
	Subject       string
	Extended      bool
	CatalogDigest string
}

// BeginRun inserts a run in the running state and returns its logical
// sequence number. Run seqs start at 1 and increase by one per run.
func (s *Store) BeginRun(ctx context.Context, id string, info RunInfo) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("begin run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, subject, extended, catalog_digest, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, seq, info.Subject, boolInt(info.Extended), info.CatalogDigest, string(StatusRunning))
	if err != nil {
		return 0, fmt.Errorf("begin run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("begin run: commit: %w", err)
	}
	return seq, nil
}

// WriteCheck appends one check to a run.
// ON CONFLICT DO NOTHING makes a repeated write of the same (run, seq) a no-op.
func (s *Store) WriteCheck(ctx context.Context, runID string, c harness.Check) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checks (run_id, seq, scenario_id, label, kind, passed, exit_status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`,
		runID,
		c.Seq,
		c.ScenarioID,
		c.Label,
		string(c.Kind),
		boolInt(c.Passed),
		c.ExitStatus,
	)
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// FinishRun records the final status and counts of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, status RunStatus, summary harness.Summary) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, scenarios = ?, checks = ?
		WHERE id = ?
	`, string(status), summary.Scenarios, summary.Checks, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: run %q not found", runID)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
