package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderflow/engine/internal/stage"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestController() *Controller {
	return NewController(WithClock(func() time.Time { return fixedTime }))
}

// adminGrants satisfies every stage's permission gate.
var adminGrants = Grants{"procurement_admin"}

func TestNewState_StartsAtPlanning(t *testing.T) {
	s := NewState("proc-001")

	assert.Equal(t, "proc-001", s.ProcurementID)
	assert.Equal(t, stage.Planning, s.CurrentStageID)
	assert.Empty(t, s.BlockingIssues)
	assert.Empty(t, s.History)
}

func TestAllowedNextStages_SingleSuccessor(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	next := c.AllowedNextStages(s)
	require.Len(t, next, 1)
	assert.Equal(t, stage.Templates, next[0].ID)
}

func TestAllowedNextStages_TerminalStageHasNone(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.CurrentStageID = stage.Completed

	assert.Empty(t, c.AllowedNextStages(s))
}

func TestCanTransition_OnlyImmediateSuccessor(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	assert.True(t, c.CanTransition(s, stage.Templates))

	for _, target := range []stage.ID{stage.Planning, stage.RFQ, stage.Evaluation, stage.Completed} {
		assert.False(t, c.CanTransition(s, target), "non-adjacent target %s must be refused", target)
	}
}

func TestCanTransition_BlockingIssuesVetoEveryTarget(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.BlockingIssues = []string{"budget not approved"}

	for _, st := range stage.All() {
		assert.False(t, c.CanTransition(s, st.ID), "blocked state must veto transition to %s", st.ID)
	}
}

func TestTransition_Success(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	out, err := c.Transition(s, stage.Templates, adminGrants)
	require.NoError(t, err)

	assert.Equal(t, stage.Templates, out.CurrentStageID)
	require.Len(t, out.History, 1)
	assert.Equal(t, stage.Planning, out.History[0].From)
	assert.Equal(t, stage.Templates, out.History[0].To)
	assert.Equal(t, fixedTime, out.History[0].At)
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	_, err := c.Transition(s, stage.Templates, adminGrants)
	require.NoError(t, err)

	assert.Equal(t, stage.Planning, s.CurrentStageID)
	assert.Empty(t, s.History)
}

func TestTransition_Blocked(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.BlockingIssues = []string{"missing budget line", "plan not signed off"}

	_, err := c.Transition(s, stage.Templates, adminGrants)
	require.Error(t, err)
	assert.True(t, IsBlocked(err))

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, []string{"missing budget line", "plan not signed off"}, te.BlockingIssues)
}

func TestTransition_InvalidTarget(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	_, err := c.Transition(s, stage.Evaluation, adminGrants)
	require.Error(t, err)
	assert.True(t, IsInvalidTarget(err))

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, stage.Evaluation, te.Requested)
	assert.Equal(t, stage.Templates, te.Allowed)
}

func TestTransition_PastTerminalStage(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.CurrentStageID = stage.Completed

	_, err := c.Transition(s, stage.Completed, adminGrants)
	require.Error(t, err)
	assert.True(t, IsInvalidTarget(err))

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Empty(t, te.Allowed, "terminal stage has no allowed successor")
}

func TestTransition_PermissionDenied(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.CurrentStageID = stage.Submission

	_, err := c.Transition(s, stage.Evaluation, Grants{"publish_rfq"})
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.RequiredPermissions, "evaluate_submission")
}

func TestTransition_NilActorDenied(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	_, err := c.Transition(s, stage.Templates, nil)
	assert.True(t, IsPermissionDenied(err))
}

func TestTransition_SpecificPermissionSuffices(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.CurrentStageID = stage.Submission

	out, err := c.Transition(s, stage.Evaluation, Grants{"evaluate_submission"})
	require.NoError(t, err)
	assert.Equal(t, stage.Evaluation, out.CurrentStageID)
}

func TestTransition_KeepsBlockingIssuesUntouched(t *testing.T) {
	// A transition never refreshes the issue list; only
	// ValidateStepCompletion does. Issues set after a validation pass
	// survive a successful transition verbatim.
	c := newTestController()
	s := NewState("proc-001")

	out, err := c.Transition(s, stage.Templates, adminGrants)
	require.NoError(t, err)
	assert.Empty(t, out.BlockingIssues)
}

func TestTransition_FullLifecycle(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	for {
		next := c.AllowedNextStages(s)
		if len(next) == 0 {
			break
		}
		var err error
		s, err = c.Transition(s, next[0].ID, adminGrants)
		require.NoError(t, err)
	}

	assert.Equal(t, stage.Completed, s.CurrentStageID)
	assert.Len(t, s.History, 8)
}

func TestValidateStepCompletion_ReplacesIssues(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.BlockingIssues = []string{"old issue"}

	out := c.ValidateStepCompletion(s, []string{"documents missing", "no evaluators assigned"})
	assert.Equal(t, []string{"documents missing", "no evaluators assigned"}, out.BlockingIssues)
	assert.Equal(t, []string{"old issue"}, s.BlockingIssues, "input state must be unchanged")

	cleared := c.ValidateStepCompletion(out, nil)
	assert.Empty(t, cleared.BlockingIssues)
}

func TestCurrentProgress(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")

	p := c.CurrentProgress(s)
	assert.Equal(t, 1, p.CurrentIndex)
	assert.Equal(t, 9, p.Total)
	assert.Equal(t, 11, p.Percentage) // round(100*1/9)

	s.CurrentStageID = stage.Evaluation
	p = c.CurrentProgress(s)
	assert.Equal(t, 5, p.CurrentIndex)
	assert.Equal(t, 56, p.Percentage) // round(100*5/9)

	s.CurrentStageID = stage.Completed
	p = c.CurrentProgress(s)
	assert.Equal(t, 100, p.Percentage)
}

func TestIsStageCompleted(t *testing.T) {
	c := newTestController()
	s := NewState("proc-001")
	s.CurrentStageID = stage.Evaluation

	assert.True(t, c.IsStageCompleted(s, stage.Planning))
	assert.True(t, c.IsStageCompleted(s, stage.Submission))
	assert.False(t, c.IsStageCompleted(s, stage.Evaluation), "current stage is not completed")
	assert.False(t, c.IsStageCompleted(s, stage.Award))
	assert.False(t, c.IsStageCompleted(s, "bogus"))
}

func TestGrants_HoldsAny(t *testing.T) {
	g := Grants{"publish_rfq", "sign_contract"}

	assert.True(t, g.HoldsAny([]string{"sign_contract", "procurement_admin"}))
	assert.False(t, g.HoldsAny([]string{"approve_award"}))
	assert.True(t, g.HoldsAny(nil), "empty required set is always satisfied")
	assert.False(t, Grants(nil).HoldsAny([]string{"approve_award"}))
}
