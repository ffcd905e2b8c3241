// Package link defines typed directed edges between procurement
// entities and the validation rules guarding their creation.
//
// Links are soft-lifecycle records: once created they are never
// removed, only their status changes. The package operates on
// caller-supplied snapshots and returns new values; it owns no storage.
package link

import (
	"time"
)

// Type is the closed set of known link kinds. Adding a kind is a
// compile-time change: the rules table and the canonical chain below
// must be extended together.
type Type string

const (
	PlanToRFQ                 Type = "PLAN_TO_RFQ"
	RFQToSubmission           Type = "RFQ_TO_SUBMISSION"
	SubmissionToEvaluation    Type = "SUBMISSION_TO_EVALUATION"
	EvaluationToApproval      Type = "EVALUATION_TO_APPROVAL"
	ApprovalToAward           Type = "APPROVAL_TO_AWARD"
	AwardToContract           Type = "AWARD_TO_CONTRACT"
	SubmissionToClarification Type = "SUBMISSION_TO_CLARIFICATION"
	ClarificationToEvaluation Type = "CLARIFICATION_TO_EVALUATION"
)

// ChainSequence is the canonical order of link types connecting a
// procurement's Plan through its Contract. Chain auditing and progress
// computation walk this sequence; the clarification links are side
// branches and not part of it.
var ChainSequence = []Type{
	PlanToRFQ,
	RFQToSubmission,
	SubmissionToEvaluation,
	EvaluationToApproval,
	ApprovalToAward,
	AwardToContract,
}

// Status is the soft lifecycle state of a link.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

// KnownStatus reports whether s is one of the defined statuses.
func KnownStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// EntityKind names the procurement entity categories links connect.
type EntityKind string

const (
	KindPlan          EntityKind = "plan"
	KindRFQ           EntityKind = "rfq"
	KindSubmission    EntityKind = "submission"
	KindEvaluation    EntityKind = "evaluation"
	KindClarification EntityKind = "clarification"
	KindApproval      EntityKind = "approval"
	KindAward         EntityKind = "award"
	KindContract      EntityKind = "contract"
)

// Link is a typed directed edge between two entity identifiers.
//
// Duplicate (Type, SourceID, TargetID) triples may coexist; there is no
// uniqueness constraint. SourceID == TargetID is not rejected either —
// cycle detection treats opposing pairs as 2-node cycles instead.
type Link struct {
	ID              string            `json:"id"`
	Type            Type              `json:"type"`
	SourceID        string            `json:"source_id"`
	TargetID        string            `json:"target_id"`
	Status          Status            `json:"status"`
	CreatedBy       string            `json:"created_by"`
	CreatedAt       time.Time         `json:"created_at"`
	StatusUpdatedAt time.Time         `json:"status_updated_at"`
	Reason          string            `json:"reason,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}
