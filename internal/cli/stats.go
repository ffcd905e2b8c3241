package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenderflow/engine/internal/graph"
	"github.com/tenderflow/engine/internal/link"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show link statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	links, err := st.Links(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load links", err)
	}

	stats := graph.LinkStatistics(links)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Links: %d total (%d active, %d inactive, %d archived)\n",
		stats.TotalLinks, stats.ActiveLinks, stats.InactiveLinks, stats.ArchivedLinks)
	// Walk the closed type list so text output order is stable.
	for _, t := range link.AllTypes() {
		if n := stats.LinkTypeBreakdown[t]; n > 0 {
			fmt.Fprintf(out, "  %-28s %d\n", t, n)
		}
	}
	return nil
}
