package cli

import (
	"errors"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/acceptance/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Journal string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history --journal <db> [run-id]",
		Short: "Show journaled runs or the checks of one run",
		Long: `Without a run ID, list every journaled run in the order it started.
With a run ID, list that run's checks in sequence order.

Example:
  acceptance history --journal runs.db
  acceptance history --journal runs.db 0192f3a4-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to the SQLite journal (required)")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	st, err := store.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitConfigError, "failed to open journal", err)
	}
	defer st.Close()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)

	if len(args) == 0 {
		runs, err := st.ReadRuns(cmd.Context())
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read runs", err)
		}
		t.AppendHeader(table.Row{"Seq", "Run", "Status", "Extended", "Scenarios", "Checks", "Catalog", "Subject"})
		for _, run := range runs {
			t.AppendRow(table.Row{run.Seq, run.ID, run.Status, run.Extended, run.Scenarios, run.Checks, shortDigest(run.CatalogDigest), run.Subject})
		}
		t.Render()
		return nil
	}

	runID := args[0]
	if _, err := st.ReadRun(cmd.Context(), runID); err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitFailure, "unknown run", err)
		}
		return WrapExitError(ExitFailure, "failed to read run", err)
	}
	checks, err := st.ReadChecks(cmd.Context(), runID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read checks", err)
	}
	t.AppendHeader(table.Row{"Seq", "Label", "Kind", "Result", "Exit", "Scenario"})
	for _, c := range checks {
		result := "OK"
		if !c.Passed {
			result = "FAILED"
		}
		t.AppendRow(table.Row{c.Seq, c.Label, c.Kind, result, c.ExitStatus, shortDigest(c.ScenarioID)})
	}
	t.Render()
	return nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
