package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tenderflow/engine/internal/stage"
	"github.com/tenderflow/engine/internal/store"
	"github.com/tenderflow/engine/internal/workflow"
)

// openStore opens the configured database, mapping failures to command
// errors.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// loadOrInitState returns the stored workflow state, or a fresh initial
// state when the procurement has never been observed.
func loadOrInitState(ctx context.Context, st *store.Store, procurementID string) (workflow.State, error) {
	state, found, err := st.LoadState(ctx, procurementID)
	if err != nil {
		return workflow.State{}, WrapExitError(ExitCommandError, "failed to load workflow state", err)
	}
	if !found {
		slog.Debug("procurement not yet observed, starting at initial stage", "procurement", procurementID)
		return workflow.NewState(procurementID), nil
	}
	return state, nil
}

// statusPayload is the JSON shape of the status command.
type statusPayload struct {
	ProcurementID  string                `json:"procurement_id"`
	CurrentStage   stage.ID              `json:"current_stage"`
	StageLabel     string                `json:"stage_label"`
	Progress       workflow.Progress     `json:"progress"`
	BlockingIssues []string              `json:"blocking_issues,omitempty"`
	AllowedNext    []stage.ID            `json:"allowed_next,omitempty"`
	History        []workflow.Transition `json:"history,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <procurement-id>",
		Short: "Show a procurement's workflow position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, args[0], cmd)
		},
	}
}

func runStatus(opts *RootOptions, procurementID string, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	state, err := loadOrInitState(cmd.Context(), st, procurementID)
	if err != nil {
		return err
	}

	ctrl := workflow.NewController()
	cur, err := stage.ByID(state.CurrentStageID)
	if err != nil {
		return WrapExitError(ExitCommandError, "stored state references unknown stage", err)
	}

	payload := statusPayload{
		ProcurementID:  state.ProcurementID,
		CurrentStage:   state.CurrentStageID,
		StageLabel:     cur.Label,
		Progress:       ctrl.CurrentProgress(state),
		BlockingIssues: state.BlockingIssues,
		History:        state.History,
	}
	for _, next := range ctrl.AllowedNextStages(state) {
		payload.AllowedNext = append(payload.AllowedNext, next.ID)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(payload)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Procurement: %s\n", payload.ProcurementID)
	fmt.Fprintf(out, "Stage:       %s (%d/%d, %d%%)\n",
		payload.StageLabel, payload.Progress.CurrentIndex, payload.Progress.Total, payload.Progress.Percentage)
	if len(payload.AllowedNext) > 0 {
		fmt.Fprintf(out, "Next:        %s\n", payload.AllowedNext[0])
	} else {
		fmt.Fprintln(out, "Next:        (terminal stage)")
	}
	if len(payload.BlockingIssues) > 0 {
		fmt.Fprintf(out, "Blocked by:  %s\n", strings.Join(payload.BlockingIssues, "; "))
	}
	for _, tr := range payload.History {
		fmt.Fprintf(out, "  %s  %s -> %s\n", tr.At.Format("2006-01-02 15:04"), tr.From, tr.To)
	}
	return nil
}
