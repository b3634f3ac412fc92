package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/acceptance/internal/catalog"
	"github.com/roach88/acceptance/internal/golden"
	"github.com/roach88/acceptance/internal/harness"
	"github.com/roach88/acceptance/internal/invoke"
	"github.com/roach88/acceptance/internal/report"
	"github.com/roach88/acceptance/internal/store"
)

func runHarness(opts *RootOptions, cmd *cobra.Command) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg := harness.Config{
		Subject:  opts.Subject,
		Extended: opts.Extended,
		Samples:  opts.Samples,
		Artifact: opts.artifactPath(),
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitConfigError, "configuration error", err)
	}
	subject, err := cfg.SubjectPath()
	if err != nil {
		return WrapExitError(ExitConfigError, "configuration error", err)
	}
	cfg.Subject = subject

	cat, err := loadCatalog(opts.Catalog)
	if err != nil {
		return WrapExitError(ExitConfigError, "failed to load catalog", err)
	}
	scenarios := cat.Select(cfg.Extended)

	// No deadline and no signal handling: an interrupt reaches the subject
	// through the terminal's process group.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	process := invoke.New(cfg.Subject)
	process.Stdin = cmd.InOrStdin()
	process.Stdout = cmd.OutOrStdout()
	process.Stderr = cmd.ErrOrStderr()
	process.Logger = logger

	runner := &harness.Runner{
		Invoker:    process,
		Comparator: golden.NewComparator(afero.NewOsFs()),
		Reporter:   report.New(cmd.OutOrStdout(), report.WithColor(colorEnabled(opts.Color, cmd.OutOrStdout()))),
		Vars:       cfg.Vars(),
		Logger:     logger,
	}

	var rec *store.RunRecorder
	if opts.Journal != "" {
		st, err := store.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitConfigError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing journal", "error", closeErr)
			}
		}()

		digest, err := cat.Digest(cfg.Extended)
		if err != nil {
			return WrapExitError(ExitConfigError, "failed to fingerprint catalog", err)
		}
		ids := opts.RunIDs
		if ids == nil {
			ids = store.UUIDv7Generator{}
		}
		rec, err = st.Recorder(ctx, ids, store.RunInfo{
			Subject:       cfg.Subject,
			Extended:      cfg.Extended,
			CatalogDigest: digest,
		})
		if err != nil {
			return WrapExitError(ExitConfigError, "failed to begin journal run", err)
		}
		runner.Recorder = rec
		logger.Debug("journaling run", "journal", opts.Journal, "run_id", rec.RunID())
	}

	logger.Debug("run starting",
		"subject", cfg.Subject,
		"extended", cfg.Extended,
		"scenarios", len(scenarios),
		"artifact", cfg.Artifact,
	)
	summary, runErr := runner.Run(ctx, scenarios)

	if rec != nil {
		// The final status is written even when ctx was canceled.
		if err := rec.Finish(context.WithoutCancel(ctx), summary, runErr); err != nil {
			logger.Error("failed to finish journal run", "run_id", rec.RunID(), "error", err)
		}
	}

	if runErr != nil {
		var mismatch *harness.ContentMismatchError
		if errors.As(runErr, &mismatch) {
			if diff := mismatch.Diff(); diff != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "artifact mismatch (-want +got):\n%s", diff)
			}
		}
		return WrapExitError(ExitFailure, "acceptance run failed", runErr)
	}
	return nil
}

// loadCatalog returns the catalog at path, or the embedded default when path
// is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
