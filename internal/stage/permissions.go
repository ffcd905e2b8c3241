package stage

// requiredPermissions maps each stage to the permission tokens that
// gate a transition INTO that stage. An actor needs at least one token
// from the target stage's set for the transition to be allowed.
//
// Planning has no entry: it is the initial stage and is never the
// target of a transition.
var requiredPermissions = map[ID][]string{
	Templates:     {"manage_templates", "procurement_admin"},
	RFQ:           {"publish_rfq", "procurement_admin"},
	Submission:    {"open_submissions", "procurement_admin"},
	Evaluation:    {"evaluate_submission", "procurement_admin"},
	Clarification: {"request_clarification", "evaluate_submission", "procurement_admin"},
	Award:         {"approve_award", "procurement_admin"},
	Contract:      {"sign_contract", "procurement_admin"},
	Completed:     {"close_procurement", "procurement_admin"},
}

// RequiredPermissions returns the permission tokens gating entry into
// the given stage. The returned slice is a copy. Stages with no entry
// (the initial stage) return an empty slice, meaning no token is
// required.
func RequiredPermissions(id ID) []string {
	perms := requiredPermissions[id]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
