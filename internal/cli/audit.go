package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenderflow/engine/internal/graph"
)

// auditPayload is the JSON shape of the audit command.
type auditPayload struct {
	Chain    graph.ChainReport    `json:"chain"`
	Progress graph.ProgressReport `json:"progress"`
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "audit <procurement-id>",
		Short: "Audit a procurement's link chain",
		Long: `Validate a procurement's link chain against the canonical
Plan-to-Contract sequence and report chain progress. Missing chain
links are warnings; circular references are critical.

Exit code is non-zero when the chain is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(rootOpts, args[0], cmd)
		},
	}
}

func runAudit(opts *RootOptions, procurementID string, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	links, err := st.Links(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load links", err)
	}

	payload := auditPayload{
		Chain:    graph.ValidateProcurementChain(procurementID, links),
		Progress: graph.WorkflowProgress(procurementID, links),
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		if err := formatter.Success(payload); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Procurement: %s (%d link(s))\n", procurementID, payload.Chain.LinkCount)
		for _, sp := range payload.Progress.Stages {
			mark := " "
			if sp.Completed {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %s\n", mark, sp.Stage)
		}
		fmt.Fprintf(out, "Progress: %d/%d stages (%d%%)\n",
			payload.Progress.CompletedStages, payload.Progress.TotalStages, payload.Progress.ProgressPercentage)
		for _, issue := range payload.Chain.Issues {
			fmt.Fprintf(out, "  %s: %s\n", issue.Severity, issue.Message)
		}
		if payload.Chain.ChainValid {
			fmt.Fprintln(out, "Chain: valid")
		} else {
			fmt.Fprintln(out, "Chain: INVALID")
		}
	}

	if !payload.Chain.ChainValid {
		return NewExitError(ExitFailure, fmt.Sprintf("chain invalid: %d issue(s)", len(payload.Chain.Issues)))
	}
	return nil
}
