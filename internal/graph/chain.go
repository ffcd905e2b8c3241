package graph

import (
	"fmt"
	"math"

	"github.com/tenderflow/engine/internal/link"
)

// Severity classifies a chain issue.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// ChainIssue is one finding from a procurement-chain audit.
type ChainIssue struct {
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	LinkType link.Type `json:"link_type,omitempty"`
}

// ChainReport is the outcome of validating a procurement's link chain.
type ChainReport struct {
	ProcurementID string       `json:"procurement_id"`
	ChainValid    bool         `json:"chain_valid"`
	Issues        []ChainIssue `json:"issues"`
	LinkCount     int          `json:"link_count"`
}

// chainStages names the canonical Plan→Contract walk. Each stage except
// the last is keyed by the link type that leads out of it.
var chainStages = []struct {
	Name     string
	LinkType link.Type
}{
	{"Plan", link.PlanToRFQ},
	{"RFQ", link.RFQToSubmission},
	{"Submission", link.SubmissionToEvaluation},
	{"Evaluation", link.EvaluationToApproval},
	{"Approval", link.ApprovalToAward},
	{"Award", link.AwardToContract},
	{"Contract", ""},
}

// belongsTo reports whether a link is associated with the procurement:
// either its source IS the procurement or it carries a procurementId
// metadata tag.
func belongsTo(l link.Link, procurementID string) bool {
	if l.SourceID == procurementID {
		return true
	}
	return l.Metadata["procurementId"] == procurementID
}

// procurementLinks filters the snapshot down to one procurement,
// preserving input order.
func procurementLinks(procurementID string, links []link.Link) []link.Link {
	var out []link.Link
	for _, l := range links {
		if belongsTo(l, procurementID) {
			out = append(out, l)
		}
	}
	return out
}

// ValidateProcurementChain audits a procurement's links against the
// canonical chain sequence. Every missing chain link is a warning
// issue; every direct circular reference among the procurement's links
// is a critical issue. The chain is valid only when no issues exist.
func ValidateProcurementChain(procurementID string, links []link.Link) ChainReport {
	scoped := procurementLinks(procurementID, links)

	present := make(map[link.Type]bool, len(scoped))
	for _, l := range scoped {
		present[l.Type] = true
	}

	var issues []ChainIssue
	for _, t := range link.ChainSequence {
		if !present[t] {
			issues = append(issues, ChainIssue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("missing expected link %s", t),
				LinkType: t,
			})
		}
	}

	for _, cycle := range DetectCircularReferences(scoped) {
		issues = append(issues, ChainIssue{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("circular reference between %s and %s", cycle.Entities[0], cycle.Entities[1]),
		})
	}

	return ChainReport{
		ProcurementID: procurementID,
		ChainValid:    len(issues) == 0,
		Issues:        issues,
		LinkCount:     len(scoped),
	}
}

// StageProgress is one entry in a procurement's chain walk.
type StageProgress struct {
	Stage     string    `json:"stage"`
	LinkType  link.Type `json:"link_type,omitempty"`
	Completed bool      `json:"completed"`
}

// ProgressReport summarizes how much of the canonical chain exists.
type ProgressReport struct {
	ProcurementID      string          `json:"procurement_id"`
	Stages             []StageProgress `json:"stages"`
	CompletedStages    int             `json:"completed_stages"`
	TotalStages        int             `json:"total_stages"`
	ProgressPercentage int             `json:"progress_percentage"`
}

// WorkflowProgress walks the canonical 7-stage chain, marking a stage
// complete when its outgoing link type exists among the procurement's
// links. The terminal Contract stage has no outgoing chain link and is
// always marked complete.
func WorkflowProgress(procurementID string, links []link.Link) ProgressReport {
	scoped := procurementLinks(procurementID, links)

	present := make(map[link.Type]bool, len(scoped))
	for _, l := range scoped {
		present[l.Type] = true
	}

	stages := make([]StageProgress, 0, len(chainStages))
	completed := 0
	for _, cs := range chainStages {
		done := cs.LinkType == "" || present[cs.LinkType]
		if done {
			completed++
		}
		stages = append(stages, StageProgress{
			Stage:     cs.Name,
			LinkType:  cs.LinkType,
			Completed: done,
		})
	}

	total := len(chainStages)
	return ProgressReport{
		ProcurementID:      procurementID,
		Stages:             stages,
		CompletedStages:    completed,
		TotalStages:        total,
		ProgressPercentage: int(math.Round(100 * float64(completed) / float64(total))),
	}
}
