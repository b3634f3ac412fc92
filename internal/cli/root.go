package cli

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/acceptance/internal/store"
)

// RootOptions holds the harness flags and the global flags shared by all
// commands.
type RootOptions struct {
	Verbose bool
	Color   string // "auto" | "always" | "never"
	Catalog string // empty means the embedded default catalog

	Subject  string
	Extended bool
	Samples  string
	Artifact string
	Journal  string

	// RunIDs allows overriding the journal's run ID generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	RunIDs store.RunIDGenerator
}

// NewRootCommand creates the root command. Invoked without a subcommand it
// runs the acceptance scenarios against --file.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acceptance --file <subject> [--extra]",
		Short: "Acceptance tests for the hex scanning tool",
		Long: `Run the acceptance scenarios against a subject executable.

Each scenario invokes the subject with a fixed argument vector, checks the
exit status and, where a golden value exists, compares the output artifact
byte for byte. The run stops at the first failing check.

Example:
  acceptance -f ./hex2bin
  acceptance -f ./hex2bin -e --samples ./samples
  acceptance -f ./hex2bin -e --journal runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidColorModes, opts.Color) {
				return NewExitError(ExitConfigError,
					fmt.Sprintf("invalid color mode %q: must be one of %v", opts.Color, ValidColorModes))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", ColorAuto, "colored transcript (auto|always|never)")
	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "scenario catalog YAML (default: built-in catalog)")

	// Harness flags
	cmd.Flags().StringVarP(&opts.Subject, "file", "f", "", "path of the subject executable")
	cmd.Flags().BoolVarP(&opts.Extended, "extra", "e", false, "also run the extended scenarios")
	cmd.Flags().StringVar(&opts.Samples, "samples", "samples", "directory holding the sample inputs")
	cmd.Flags().StringVar(&opts.Artifact, "artifact", "", "output artifact path (default: <samples>/sample.txt.temp)")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the run in this SQLite journal")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// artifactPath applies the artifact default.
func (o *RootOptions) artifactPath() string {
	if o.Artifact != "" {
		return o.Artifact
	}
	return filepath.Join(o.Samples, "sample.txt.temp")
}
