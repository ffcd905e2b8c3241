package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tenderflow/engine/internal/link"
	"github.com/tenderflow/engine/internal/stage"
	"github.com/tenderflow/engine/internal/workflow"
)

// Links returns every stored link in insertion (rowid) order.
// Returns an empty slice, not nil, when the table is empty.
func (s *Store) Links(ctx context.Context) ([]link.Link, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, source_id, target_id, status, created_by, created_at, status_updated_at, reason, metadata
		FROM links
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	links := []link.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}

	return links, nil
}

// LinksForProcurement returns the stored links associated with one
// procurement: source match or procurementId metadata tag, the same
// membership rule the graph auditor applies. Insertion order is kept.
func (s *Store) LinksForProcurement(ctx context.Context, procurementID string) ([]link.Link, error) {
	all, err := s.Links(ctx)
	if err != nil {
		return nil, err
	}

	scoped := []link.Link{}
	for _, l := range all {
		if l.SourceID == procurementID || l.Metadata["procurementId"] == procurementID {
			scoped = append(scoped, l)
		}
	}
	return scoped, nil
}

// LoadState returns the stored workflow state for a procurement.
// The second return is false when the procurement has never been
// observed.
func (s *Store) LoadState(ctx context.Context, procurementID string) (workflow.State, bool, error) {
	var (
		currentStage string
		issuesJSON   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT current_stage_id, blocking_issues
		FROM workflow_states
		WHERE procurement_id = ?
	`, procurementID).Scan(&currentStage, &issuesJSON)
	if err == sql.ErrNoRows {
		return workflow.State{}, false, nil
	}
	if err != nil {
		return workflow.State{}, false, fmt.Errorf("load state: %w", err)
	}

	var issues []string
	if err := json.Unmarshal([]byte(issuesJSON), &issues); err != nil {
		return workflow.State{}, false, fmt.Errorf("load state: decode issues: %w", err)
	}
	if len(issues) == 0 {
		issues = nil
	}

	history, err := s.readTransitions(ctx, procurementID)
	if err != nil {
		return workflow.State{}, false, err
	}

	return workflow.State{
		ProcurementID:  procurementID,
		CurrentStageID: stage.ID(currentStage),
		BlockingIssues: issues,
		History:        history,
	}, true, nil
}

// readTransitions returns the audit trail in append order.
func (s *Store) readTransitions(ctx context.Context, procurementID string) ([]workflow.Transition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT from_stage_id, to_stage_id, at
		FROM workflow_transitions
		WHERE procurement_id = ?
		ORDER BY id ASC
	`, procurementID)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var history []workflow.Transition
	for rows.Next() {
		var from, to, at string
		if err := rows.Scan(&from, &to, &at); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		ts, err := parseTime(at)
		if err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		history = append(history, workflow.Transition{
			From: stage.ID(from),
			To:   stage.ID(to),
			At:   ts,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transitions: %w", err)
	}

	return history, nil
}

func scanLink(rows *sql.Rows) (link.Link, error) {
	var (
		l                    link.Link
		typ, status          string
		createdAt, updatedAt string
		metaJSON             string
	)
	err := rows.Scan(&l.ID, &typ, &l.SourceID, &l.TargetID, &status, &l.CreatedBy, &createdAt, &updatedAt, &l.Reason, &metaJSON)
	if err != nil {
		return link.Link{}, fmt.Errorf("scan link: %w", err)
	}

	l.Type = link.Type(typ)
	l.Status = link.Status(status)

	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return link.Link{}, fmt.Errorf("scan link: %w", err)
	}
	if l.StatusUpdatedAt, err = parseTime(updatedAt); err != nil {
		return link.Link{}, fmt.Errorf("scan link: %w", err)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
		return link.Link{}, fmt.Errorf("scan link: decode metadata: %w", err)
	}
	if len(meta) > 0 {
		l.Metadata = meta
	}

	return l, nil
}

// parseTime reverses formatTime; empty strings mean the zero time.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
