package cli

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/acceptance/internal/catalog"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Extended bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the scenarios a run would execute",
		Long: `Print the scenarios of the catalog in run order, with the check
numbers each one would receive if every earlier check passes.

Placeholders ({samples}, {artifact}, {workdir}) are shown unexpanded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Extended, "extra", "e", false, "include the extended scenarios")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	cat, err := loadCatalog(opts.Catalog)
	if err != nil {
		return WrapExitError(ExitConfigError, "failed to load catalog", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Checks", "Label", "Expect", "IO", "Args", "Golden"})

	seq := 1
	for _, sc := range cat.Select(opts.Extended) {
		checks := strconv.Itoa(seq)
		seq++
		if sc.Golden != nil {
			checks += "-" + strconv.Itoa(seq)
			seq++
		}
		t.AppendRow(table.Row{checks, sc.Label, sc.Expect, sc.IO, strings.Join(sc.Args, " "), goldenSummary(sc.Golden)})
	}
	t.Render()
	return nil
}

func goldenSummary(g *catalog.Golden) string {
	if g == nil {
		return ""
	}
	if g.Source == catalog.SourcePrevious {
		return g.Want + " (previous)"
	}
	return g.Want
}
