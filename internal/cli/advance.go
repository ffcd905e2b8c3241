package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tenderflow/engine/internal/stage"
	"github.com/tenderflow/engine/internal/workflow"
)

// AdvanceOptions holds flags for the advance command.
type AdvanceOptions struct {
	*RootOptions
	Actor  string
	Grants string
}

// NewAdvanceCommand creates the advance command.
func NewAdvanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdvanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "advance <procurement-id> <to-stage>",
		Short: "Move a procurement to its next stage",
		Long: `Move a procurement forward by exactly one stage.

The transition is refused when unresolved blocking issues exist, when
the target is not the immediate successor of the current stage, or when
the actor holds none of the target stage's required permissions.

Example:
  tenderflow advance proc-001 templates --actor alice --grants grants.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(opts, args[0], stage.ID(args[1]), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Actor, "actor", "", "acting user (required)")
	cmd.Flags().StringVar(&opts.Grants, "grants", "", "path to permission grants YAML (required)")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("grants")

	return cmd
}

func runAdvance(opts *AdvanceOptions, procurementID string, to stage.ID, cmd *cobra.Command) error {
	grants, err := LoadGrants(opts.Grants, opts.Actor)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load grants", err)
	}
	slog.Debug("grants loaded", "actor", opts.Actor, "tokens", len(grants))

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
	next, err := ctrl.Transition(state, to, grants)
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if err != nil {
		var te *workflow.TransitionError
		if errors.As(err, &te) {
			_ = formatter.Error(string(te.Code), te.Error(), te)
			return NewExitError(ExitFailure, te.Error())
		}
		return WrapExitError(ExitCommandError, "transition failed", err)
	}

	if err := st.SaveState(cmd.Context(), next); err != nil {
		return WrapExitError(ExitCommandError, "failed to persist workflow state", err)
	}
	slog.Info("stage advanced", "procurement", procurementID, "from", state.CurrentStageID, "to", to)

	if opts.Format == "json" {
		return formatter.Success(next)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Advanced %s: %s -> %s\n", procurementID, state.CurrentStageID, to)
	return nil
}
