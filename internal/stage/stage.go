// Package stage defines the fixed, ordered catalogue of procurement
// workflow stages and the permission tokens each stage requires.
//
// The catalogue is process-wide immutable configuration: it is defined
// once at compile time and exposed only through read-only accessors,
// so concurrent readers need no synchronization.
package stage

import "fmt"

// ID identifies a workflow stage. IDs are the stable keys referenced by
// workflow states, transition history and permission grants.
type ID string

const (
	Planning      ID = "planning"
	Templates     ID = "templates"
	RFQ           ID = "rfq"
	Submission    ID = "submission"
	Evaluation    ID = "evaluation"
	Clarification ID = "clarification"
	Award         ID = "award"
	Contract      ID = "contract"
	Completed     ID = "completed"
)

// Stage describes one phase of the procurement lifecycle.
// Order values form a contiguous 1..9 sequence with no gaps.
type Stage struct {
	ID          ID
	Label       string
	Description string
	Order       int
	Required    bool
}

// stages is the canonical catalogue in lifecycle order.
// The slice index is Order-1; both are fixed at compile time.
var stages = []Stage{
	{ID: Planning, Label: "Planning", Description: "Procurement plan drafting and budget allocation", Order: 1, Required: true},
	{ID: Templates, Label: "Templates", Description: "Tender document template preparation", Order: 2, Required: true},
	{ID: RFQ, Label: "Request for Quotation", Description: "RFQ publication and supplier notification", Order: 3, Required: true},
	{ID: Submission, Label: "Submission", Description: "Supplier bid submission window", Order: 4, Required: true},
	{ID: Evaluation, Label: "Evaluation", Description: "Bid scoring and comparison", Order: 5, Required: true},
	{ID: Clarification, Label: "Clarification", Description: "Supplier clarification round", Order: 6, Required: false},
	{ID: Award, Label: "Award", Description: "Award decision and supplier notification", Order: 7, Required: true},
	{ID: Contract, Label: "Contract", Description: "Contract drafting and signature", Order: 8, Required: true},
	{ID: Completed, Label: "Completed", Description: "Procurement closed", Order: 9, Required: true},
}

var byID = func() map[ID]Stage {
	m := make(map[ID]Stage, len(stages))
	for _, s := range stages {
		m[s.ID] = s
	}
	return m
}()

// NotFoundError is returned when a stage ID is not in the catalogue.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown stage %q", e.ID)
}

// All returns the full catalogue in ascending Order. The returned slice
// is a copy; callers may not mutate the catalogue through it.
func All() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// Count returns the number of stages in the catalogue.
func Count() int {
	return len(stages)
}

// ByOrder returns the stage with the given 1-based order.
func ByOrder(order int) (Stage, error) {
	if order < 1 || order > len(stages) {
		return Stage{}, &NotFoundError{ID: ID(fmt.Sprintf("order-%d", order))}
	}
	return stages[order-1], nil
}

// ByID returns the stage with the given ID, or a NotFoundError.
func ByID(id ID) (Stage, error) {
	s, ok := byID[id]
	if !ok {
		return Stage{}, &NotFoundError{ID: id}
	}
	return s, nil
}

// Next returns the immediate successor of the given stage, or nil when
// the stage is terminal. Unknown IDs return a NotFoundError.
func Next(id ID) (*Stage, error) {
	s, err := ByID(id)
	if err != nil {
		return nil, err
	}
	if s.Order == len(stages) {
		return nil, nil
	}
	next := stages[s.Order] // Order is 1-based, so this is the successor
	return &next, nil
}

// First returns the initial stage of the lifecycle.
func First() Stage {
	return stages[0]
}

// IsTerminal reports whether the given ID names the final stage.
func IsTerminal(id ID) bool {
	return id == stages[len(stages)-1].ID
}
