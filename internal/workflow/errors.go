package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tenderflow/engine/internal/stage"
)

// TransitionErrorCode categorizes transition failures.
type TransitionErrorCode string

const (
	// ErrCodeBlocked indicates unresolved blocking issues veto every
	// transition regardless of target.
	ErrCodeBlocked TransitionErrorCode = "BLOCKED"

	// ErrCodeInvalidTarget indicates the requested stage is not the
	// single allowed successor of the current stage.
	ErrCodeInvalidTarget TransitionErrorCode = "INVALID_TARGET"

	// ErrCodePermissionDenied indicates the actor holds none of the
	// target stage's required permission tokens.
	ErrCodePermissionDenied TransitionErrorCode = "PERMISSION_DENIED"
)

// TransitionError is returned when a stage transition is refused.
//
// Every refusal is a recoverable, caller-visible result: the error
// carries the exact blocking issues, the allowed target, or the
// required permissions so the caller can present an actionable message
// and retry after remediation. The workflow state passed in is never
// mutated on failure.
type TransitionError struct {
	// Code identifies the refusal category.
	Code TransitionErrorCode

	// ProcurementID identifies the affected procurement.
	ProcurementID string

	// Requested is the stage the caller asked to move to.
	Requested stage.ID

	// Allowed is the single permitted successor, empty at the terminal
	// stage. Set for INVALID_TARGET refusals.
	Allowed stage.ID

	// BlockingIssues lists the unresolved issues. Set for BLOCKED.
	BlockingIssues []string

	// RequiredPermissions lists the target stage's permission tokens,
	// none of which the actor held. Set for PERMISSION_DENIED.
	RequiredPermissions []string
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	switch e.Code {
	case ErrCodeBlocked:
		return fmt.Sprintf("%s: transition to %q vetoed by %d blocking issue(s): %s",
			e.Code, e.Requested, len(e.BlockingIssues), strings.Join(e.BlockingIssues, "; "))
	case ErrCodeInvalidTarget:
		if e.Allowed == "" {
			return fmt.Sprintf("%s: cannot transition to %q, workflow is at the terminal stage", e.Code, e.Requested)
		}
		return fmt.Sprintf("%s: cannot transition to %q, the only allowed next stage is %q", e.Code, e.Requested, e.Allowed)
	case ErrCodePermissionDenied:
		return fmt.Sprintf("%s: transition to %q requires one of %v", e.Code, e.Requested, e.RequiredPermissions)
	}
	return fmt.Sprintf("%s: transition to %q refused", e.Code, e.Requested)
}

// IsBlocked returns true if the error is a blocking-issue veto.
// Uses errors.As to handle wrapped errors.
func IsBlocked(err error) bool {
	var te *TransitionError
	return errors.As(err, &te) && te.Code == ErrCodeBlocked
}

// IsInvalidTarget returns true if the error is an invalid-target refusal.
func IsInvalidTarget(err error) bool {
	var te *TransitionError
	return errors.As(err, &te) && te.Code == ErrCodeInvalidTarget
}

// IsPermissionDenied returns true if the error is a permission refusal.
func IsPermissionDenied(err error) bool {
	var te *TransitionError
	return errors.As(err, &te) && te.Code == ErrCodePermissionDenied
}
