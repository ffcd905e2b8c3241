// Package workflow implements the procurement lifecycle state machine.
//
// A State is one procurement's position in the 9-stage lifecycle plus
// its audit trail. All operations are pure: they take a State value and
// return a new State value, never mutating the input. Persistence is
// the caller's concern; the caller must serialize read-modify-write
// cycles against its own storage (the package itself needs no locking).
package workflow

import (
	"time"

	"github.com/tenderflow/engine/internal/stage"
)

// Transition records one completed stage change in a procurement's
// audit trail.
type Transition struct {
	From stage.ID  `json:"from"`
	To   stage.ID  `json:"to"`
	At   time.Time `json:"at"`
}

// State is the workflow position of a single procurement.
//
// BlockingIssues is refreshed only by ValidateStepCompletion; a
// transition never touches it, so callers must re-validate before each
// transition attempt. History is append-only.
type State struct {
	ProcurementID  string       `json:"procurement_id"`
	CurrentStageID stage.ID     `json:"current_stage_id"`
	BlockingIssues []string     `json:"blocking_issues"`
	History        []Transition `json:"history"`
}

// NewState creates the initial workflow state for a procurement,
// positioned at the first lifecycle stage with no blocking issues.
func NewState(procurementID string) State {
	return State{
		ProcurementID:  procurementID,
		CurrentStageID: stage.First().ID,
	}
}

// clone returns a deep copy of the state so operations can return new
// values without sharing slices with the input.
func (s State) clone() State {
	out := s
	if s.BlockingIssues != nil {
		out.BlockingIssues = make([]string, len(s.BlockingIssues))
		copy(out.BlockingIssues, s.BlockingIssues)
	}
	if s.History != nil {
		out.History = make([]Transition, len(s.History))
		copy(out.History, s.History)
	}
	return out
}

// Blocked reports whether the state carries unresolved blocking issues.
func (s State) Blocked() bool {
	return len(s.BlockingIssues) > 0
}
