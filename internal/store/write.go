package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tenderflow/engine/internal/link"
	"github.com/tenderflow/engine/internal/workflow"
)

// SaveLink upserts a link record. The insert path covers newly created
// links; the update path covers status changes, so committing a link
// returned by the engine is always a single call.
func (s *Store) SaveLink(ctx context.Context, l link.Link) error {
	meta, err := marshalMetadata(l.Metadata)
	if err != nil {
		return fmt.Errorf("save link: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO links
		(id, type, source_id, target_id, status, created_by, created_at, status_updated_at, reason, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			status_updated_at = excluded.status_updated_at,
			reason = excluded.reason
	`,
		l.ID,
		string(l.Type),
		l.SourceID,
		l.TargetID,
		string(l.Status),
		l.CreatedBy,
		formatTime(l.CreatedAt),
		formatTime(l.StatusUpdatedAt),
		l.Reason,
		meta,
	)
	if err != nil {
		return fmt.Errorf("save link: %w", err)
	}

	return nil
}

// SaveState upserts a procurement's workflow state and appends any
// history entries not yet persisted. The transition table is
// append-only: existing rows are never rewritten, only the tail of the
// in-memory history beyond the persisted count is inserted.
func (s *Store) SaveState(ctx context.Context, st workflow.State) error {
	issues, err := json.Marshal(issuesOrEmpty(st.BlockingIssues))
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workflow_states (procurement_id, current_stage_id, blocking_issues, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(procurement_id) DO UPDATE SET
			current_stage_id = excluded.current_stage_id,
			blocking_issues = excluded.blocking_issues,
			updated_at = excluded.updated_at
	`,
		st.ProcurementID,
		string(st.CurrentStageID),
		string(issues),
		formatTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	var persisted int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workflow_transitions WHERE procurement_id = ?`,
		st.ProcurementID,
	).Scan(&persisted)
	if err != nil {
		return fmt.Errorf("save state: count transitions: %w", err)
	}

	for i := persisted; i < len(st.History); i++ {
		tr := st.History[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO workflow_transitions (procurement_id, from_stage_id, to_stage_id, at)
			VALUES (?, ?, ?, ?)
		`,
			st.ProcurementID,
			string(tr.From),
			string(tr.To),
			formatTime(tr.At),
		)
		if err != nil {
			return fmt.Errorf("save state: append transition: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	return nil
}

func marshalMetadata(meta map[string]string) (string, error) {
	if len(meta) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	return string(data), nil
}

func issuesOrEmpty(issues []string) []string {
	if issues == nil {
		return []string{}
	}
	return issues
}

// formatTime renders a timestamp as RFC 3339 with nanoseconds, the
// store's canonical string form. Zero times render as the empty string.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
