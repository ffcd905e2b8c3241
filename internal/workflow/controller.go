package workflow

import (
	"math"
	"time"

	"github.com/tenderflow/engine/internal/stage"
)

// PermissionProvider answers whether the acting user holds any of the
// given permission tokens. Implemented by Grants (static token set) in
// production and by test doubles.
type PermissionProvider interface {
	HoldsAny(tokens []string) bool
}

// Grants is a static permission token set. The zero value holds
// nothing.
type Grants []string

// HoldsAny reports whether the grant set contains at least one of the
// given tokens. An empty required set is always satisfied.
func (g Grants) HoldsAny(tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, want := range tokens {
		for _, have := range g {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Progress summarizes how far a procurement has advanced through the
// lifecycle.
type Progress struct {
	CurrentIndex int `json:"current_index"` // 1-based order of the current stage
	Total        int `json:"total"`
	Percentage   int `json:"percentage"`
}

// Controller performs gated transitions over workflow states.
//
// The controller itself is stateless; every method takes the state as
// an explicit argument and returns a new value. It is safe for
// concurrent use.
type Controller struct {
	now func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the transition timestamp source. Used by tests
// for deterministic history entries.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a Controller. By default transition timestamps
// come from time.Now in UTC.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AllowedNextStages returns the stages the procurement may move to
// next: exactly one (the immediate successor) or none at the terminal
// stage. Transitions are strictly forward by one stage; skipping is
// never allowed.
func (c *Controller) AllowedNextStages(s State) []stage.Stage {
	next, err := stage.Next(s.CurrentStageID)
	if err != nil || next == nil {
		return nil
	}
	return []stage.Stage{*next}
}

// CanTransition reports whether the state may move to the given stage:
// the blocking-issue list must be empty and the target must be the
// single allowed successor. A non-empty issue list vetoes every target.
func (c *Controller) CanTransition(s State, to stage.ID) bool {
	if s.Blocked() {
		return false
	}
	next, err := stage.Next(s.CurrentStageID)
	if err != nil || next == nil {
		return false
	}
	return next.ID == to
}

// Transition moves the procurement to the given stage after re-checking
// CanTransition and the actor's permissions for the target stage.
//
// On success it returns a new State with the current stage updated and
// a history entry appended; blocking issues are carried over untouched
// (only ValidateStepCompletion refreshes them). On failure it returns a
// TransitionError and the zero State; the input is never mutated.
func (c *Controller) Transition(s State, to stage.ID, actor PermissionProvider) (State, error) {
	if s.Blocked() {
		issues := make([]string, len(s.BlockingIssues))
		copy(issues, s.BlockingIssues)
		return State{}, &TransitionError{
			Code:           ErrCodeBlocked,
			ProcurementID:  s.ProcurementID,
			Requested:      to,
			BlockingIssues: issues,
		}
	}

	next, err := stage.Next(s.CurrentStageID)
	if err != nil || next == nil || next.ID != to {
		te := &TransitionError{
			Code:          ErrCodeInvalidTarget,
			ProcurementID: s.ProcurementID,
			Requested:     to,
		}
		if next != nil {
			te.Allowed = next.ID
		}
		return State{}, te
	}

	required := stage.RequiredPermissions(to)
	if actor == nil || !actor.HoldsAny(required) {
		return State{}, &TransitionError{
			Code:                ErrCodePermissionDenied,
			ProcurementID:       s.ProcurementID,
			Requested:           to,
			RequiredPermissions: required,
		}
	}

	out := s.clone()
	out.History = append(out.History, Transition{
		From: s.CurrentStageID,
		To:   to,
		At:   c.now(),
	})
	out.CurrentStageID = to
	return out, nil
}

// ValidateStepCompletion replaces the state's blocking issues with the
// list supplied by an external step-completion validator. The engine
// does not decide what counts as an issue; it only records the result.
func (c *Controller) ValidateStepCompletion(s State, issues []string) State {
	out := s.clone()
	if len(issues) == 0 {
		out.BlockingIssues = nil
		return out
	}
	out.BlockingIssues = make([]string, len(issues))
	copy(out.BlockingIssues, issues)
	return out
}

// CurrentProgress computes how far the procurement has advanced.
// Percentage is round(100 * order / total) over the full catalogue.
func (c *Controller) CurrentProgress(s State) Progress {
	total := stage.Count()
	cur, err := stage.ByID(s.CurrentStageID)
	if err != nil {
		return Progress{Total: total}
	}
	return Progress{
		CurrentIndex: cur.Order,
		Total:        total,
		Percentage:   int(math.Round(100 * float64(cur.Order) / float64(total))),
	}
}

// IsStageCompleted reports whether the given stage lies strictly before
// the current stage in lifecycle order. Unknown stage IDs are never
// completed.
func (c *Controller) IsStageCompleted(s State, id stage.ID) bool {
	cur, err := stage.ByID(s.CurrentStageID)
	if err != nil {
		return false
	}
	target, err := stage.ByID(id)
	if err != nil {
		return false
	}
	return target.Order < cur.Order
}
