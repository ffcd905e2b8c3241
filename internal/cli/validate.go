package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenderflow/engine/internal/workflow"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	IssuesFile string
}

// NewValidateCommand creates the validate command. It records the
// outcome of an external step-completion check: the supplied issues
// replace the procurement's blocking-issue list wholesale.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <procurement-id>",
		Short: "Record step-completion validation results",
		Long: `Record the blocking issues reported by an external step-completion
validator. An empty issues file clears the list and unblocks
transitions.

Example:
  tenderflow validate proc-001 --issues-file issues.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.IssuesFile, "issues-file", "", "path to blocking issues YAML (required)")
	_ = cmd.MarkFlagRequired("issues-file")

	return cmd
}

func runValidate(opts *ValidateOptions, procurementID string, cmd *cobra.Command) error {
	issues, err := LoadIssues(opts.IssuesFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load issues", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	state, err := loadOrInitState(cmd.Context(), st, procurementID)
	if err != nil {
		return err
	}

	ctrl := workflow.NewController()
	next := ctrl.ValidateStepCompletion(state, issues)

	if err := st.SaveState(cmd.Context(), next); err != nil {
		return WrapExitError(ExitCommandError, "failed to persist workflow state", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(next)
	}
	if len(issues) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation recorded for %s: no blocking issues\n", procurementID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation recorded for %s: %d blocking issue(s)\n", procurementID, len(issues))
	}
	return nil
}
