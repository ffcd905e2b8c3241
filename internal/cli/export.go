package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tenderflow/engine/internal/graph"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	ReportFormat string
	Output       string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the link register",
		Long: `Export every stored link as a report.

Example:
  tenderflow export --report-format csv -o links.csv
  tenderflow export --report-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ReportFormat, "report-format", "csv", "report format (csv|json)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write report to file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	links, err := st.Links(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load links", err)
	}

	report, err := graph.ExportReport(links, graph.Format(opts.ReportFormat), nil)
	if err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(report.Data), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write report", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d record(s) to %s\n", report.RecordCount, opts.Output)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Data)
	return nil
}
