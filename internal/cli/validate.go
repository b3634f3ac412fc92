package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/acceptance/internal/catalog"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Validate a scenario catalog without running it",
		Long: `Check a catalog against the scenario schema and the ordering rules:
labels are unique, golden values only follow success scenarios, and a
"previous" comparison needs an earlier artifact comparison.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], cmd)
		},
	}

	return cmd
}

func runValidate(path string, cmd *cobra.Command) error {
	cat, err := catalog.Load(path)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid catalog", err)
	}

	digest, err := cat.Digest(true)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to fingerprint catalog", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d basic, %d extended scenarios)\n",
		path, len(cat.Basic), len(cat.Extended))
	fmt.Fprintf(cmd.OutOrStdout(), "digest: %s\n", digest)
	return nil
}
