package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderflow/engine/internal/link"
)

// taggedLink builds a link carrying the procurementId metadata tag.
func taggedLink(id string, t link.Type, source, target, procurementID string) link.Link {
	l := mkLink(id, t, source, target, link.StatusActive, 0)
	l.Metadata = map[string]string{"procurementId": procurementID}
	return l
}

func TestValidateProcurementChain_Complete(t *testing.T) {
	links := []link.Link{
		taggedLink("l1", link.PlanToRFQ, "proc-1", "rfq-1", "proc-1"),
		taggedLink("l2", link.RFQToSubmission, "rfq-1", "sub-1", "proc-1"),
		taggedLink("l3", link.SubmissionToEvaluation, "sub-1", "eval-1", "proc-1"),
		taggedLink("l4", link.EvaluationToApproval, "eval-1", "appr-1", "proc-1"),
		taggedLink("l5", link.ApprovalToAward, "appr-1", "award-1", "proc-1"),
		taggedLink("l6", link.AwardToContract, "award-1", "contract-1", "proc-1"),
	}

	rep := ValidateProcurementChain("proc-1", links)
	assert.True(t, rep.ChainValid)
	assert.Empty(t, rep.Issues)
	assert.Equal(t, 6, rep.LinkCount)
}

func TestValidateProcurementChain_PartialChain(t *testing.T) {
	// Chain covered through SUBMISSION_TO_EVALUATION only: exactly the
	// three downstream links are reported missing, all as warnings.
	links := []link.Link{
		taggedLink("l1", link.PlanToRFQ, "proc-1", "rfq-1", "proc-1"),
		taggedLink("l2", link.RFQToSubmission, "rfq-1", "sub-1", "proc-1"),
		taggedLink("l3", link.SubmissionToEvaluation, "sub-1", "eval-1", "proc-1"),
	}

	rep := ValidateProcurementChain("proc-1", links)
	assert.False(t, rep.ChainValid)
	require.Len(t, rep.Issues, 3)

	var missing []link.Type
	for _, issue := range rep.Issues {
		assert.Equal(t, SeverityWarning, issue.Severity)
		missing = append(missing, issue.LinkType)
	}
	assert.Equal(t, []link.Type{
		link.EvaluationToApproval,
		link.ApprovalToAward,
		link.AwardToContract,
	}, missing)
}

func TestValidateProcurementChain_MatchesBySourceID(t *testing.T) {
	// Association works without metadata when the link's source IS the
	// procurement.
	links := []link.Link{
		mkLink("l1", link.PlanToRFQ, "proc-1", "rfq-1", link.StatusActive, 0),
	}

	rep := ValidateProcurementChain("proc-1", links)
	assert.Equal(t, 1, rep.LinkCount)
}

func TestValidateProcurementChain_CycleIsCritical(t *testing.T) {
	links := []link.Link{
		taggedLink("l1", link.PlanToRFQ, "plan-1", "rfq-1", "proc-1"),
		taggedLink("l2", link.RFQToSubmission, "rfq-1", "plan-1", "proc-1"),
	}

	rep := ValidateProcurementChain("proc-1", links)
	assert.False(t, rep.ChainValid)

	var criticals []ChainIssue
	for _, issue := range rep.Issues {
		if issue.Severity == SeverityCritical {
			criticals = append(criticals, issue)
		}
	}
	require.Len(t, criticals, 1)
	assert.Contains(t, criticals[0].Message, "circular reference")
}

func TestValidateProcurementChain_IgnoresOtherProcurements(t *testing.T) {
	links := []link.Link{
		taggedLink("l1", link.PlanToRFQ, "plan-2", "rfq-2", "proc-2"),
	}

	rep := ValidateProcurementChain("proc-1", links)
	assert.Equal(t, 0, rep.LinkCount)
	assert.Len(t, rep.Issues, 6, "all six chain links missing")
}

func TestWorkflowProgress_EmptyChain(t *testing.T) {
	rep := WorkflowProgress("proc-1", nil)

	assert.Equal(t, 7, rep.TotalStages)
	// Contract has no outgoing chain link and always counts as complete.
	assert.Equal(t, 1, rep.CompletedStages)
	assert.Equal(t, 14, rep.ProgressPercentage) // round(100*1/7)

	require.Len(t, rep.Stages, 7)
	assert.Equal(t, "Plan", rep.Stages[0].Stage)
	assert.False(t, rep.Stages[0].Completed)
	assert.Equal(t, "Contract", rep.Stages[6].Stage)
	assert.True(t, rep.Stages[6].Completed)
}

func TestWorkflowProgress_PartialChain(t *testing.T) {
	links := []link.Link{
		taggedLink("l1", link.PlanToRFQ, "proc-1", "rfq-1", "proc-1"),
		taggedLink("l2", link.RFQToSubmission, "rfq-1", "sub-1", "proc-1"),
	}

	rep := WorkflowProgress("proc-1", links)
	// Plan, RFQ complete via their outgoing links, plus Contract.
	assert.Equal(t, 3, rep.CompletedStages)
	assert.Equal(t, 43, rep.ProgressPercentage) // round(100*3/7)
	assert.True(t, rep.Stages[0].Completed)
	assert.True(t, rep.Stages[1].Completed)
	assert.False(t, rep.Stages[2].Completed)
}

func TestWorkflowProgress_FullChain(t *testing.T) {
	var links []link.Link
	entities := []string{"proc-1", "rfq-1", "sub-1", "eval-1", "appr-1", "award-1", "contract-1"}
	for i, t2 := range link.ChainSequence {
		links = append(links, taggedLink("l"+entities[i], t2, entities[i], entities[i+1], "proc-1"))
	}

	rep := WorkflowProgress("proc-1", links)
	assert.Equal(t, 7, rep.CompletedStages)
	assert.Equal(t, 100, rep.ProgressPercentage)
}
