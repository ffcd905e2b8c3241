package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tenderflow/engine/internal/link"
)

// LinkOptions holds flags for the link command.
type LinkOptions struct {
	*RootOptions
	CreatedBy string
	Entities  string
	Metadata  []string
}

// NewLinkCommand creates the link command.
func NewLinkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LinkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "link <type> <source-id> <target-id>",
		Short: "Create a typed link between two entities",
		Long: `Create a typed directed link between two procurement entities.

When an entities file is supplied, both snapshots are validated against
the link type's required-field rule before the link is created; any
missing fields are reported in full.

Example:
  tenderflow link PLAN_TO_RFQ plan-1 rfq-1 --created-by alice \
    --entities entities.yaml --meta procurementId=proc-001`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(opts, link.Type(args[0]), args[1], args[2], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CreatedBy, "created-by", "", "acting user (required)")
	cmd.Flags().StringVar(&opts.Entities, "entities", "", "path to entity snapshots YAML for validation")
	cmd.Flags().StringArrayVar(&opts.Metadata, "meta", nil, "metadata key=value pairs (repeatable)")
	_ = cmd.MarkFlagRequired("created-by")

	return cmd
}

func runLink(opts *LinkOptions, t link.Type, sourceID, targetID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	if opts.Entities != "" {
		source, target, err := LoadSnapshots(opts.Entities, sourceID, targetID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load entity snapshots", err)
		}
		if res := link.Validate(t, source, target); !res.Valid {
			_ = formatter.Error(string(link.ErrCodeValidationFailed), res.Reason, res)
			return NewExitError(ExitFailure, res.Reason)
		}
		slog.Debug("snapshots validated", "type", t, "source", sourceID, "target", targetID)
	}

	metadata, err := parseMetadata(opts.Metadata)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid metadata flag", err)
	}

	factory := link.NewFactory()
	created, err := factory.Create(t, sourceID, targetID, opts.CreatedBy, metadata)
	if err != nil {
		var ve *link.ValidationError
		if errors.As(err, &ve) {
			_ = formatter.Error(string(ve.Code), ve.Error(), ve)
			return NewExitError(ExitFailure, ve.Error())
		}
		return WrapExitError(ExitCommandError, "link creation failed", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveLink(cmd.Context(), created); err != nil {
		return WrapExitError(ExitCommandError, "failed to persist link", err)
	}
	slog.Info("link created", "id", created.ID, "type", created.Type)

	if opts.Format == "json" {
		return formatter.Success(created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s link %s: %s -> %s\n", created.Type, created.ID, created.SourceID, created.TargetID)
	return nil
}

// parseMetadata converts repeated key=value flags into a map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("metadata must be key=value, got %q", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
