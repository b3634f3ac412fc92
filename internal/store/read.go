package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/acceptance/internal/harness"
)

// ErrRunNotFound is returned when a run ID is not in the journal.
var ErrRunNotFound = errors.New("run not found")

// Run is a journaled run.
type Run struct {
	ID            string
	Seq           int64
	Subject       string
	Extended      bool
	CatalogDigest string
	Status        RunStatus
	Scenarios     int
	Checks        int
}

// ReadRuns returns all runs ordered by seq.
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ReadRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, subject, extended, catalog_digest, status, scenarios, checks
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns one run, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, subject, extended, catalog_digest, status, scenarios, checks
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// ReadChecks returns the checks of a run ordered by seq.
// Returns an empty slice (not nil) if the run recorded no checks.
func (s *Store) ReadChecks(ctx context.Context, runID string) ([]harness.Check, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, label, kind, scenario_id, passed, exit_status
		FROM checks
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	checks := []harness.Check{}
	for rows.Next() {
		var (
			c      harness.Check
			kind   string
			passed int
		)
		if err := rows.Scan(&c.Seq, &c.Label, &kind, &c.ScenarioID, &passed, &c.ExitStatus); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		c.Kind = harness.CheckKind(kind)
		c.Passed = passed == 1
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checks: %w", err)
	}
	return checks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run      Run
		extended int
		status   string
	)
	err := row.Scan(&run.ID, &run.Seq, &run.Subject, &extended, &run.CatalogDigest, &status, &run.Scenarios, &run.Checks)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Extended = extended == 1
	run.Status = RunStatus(status)
	return run, nil
}
