package link

// Rule describes the field-presence requirements for one link type:
// which entity kinds it connects and which fields each snapshot must
// carry before the link may be created.
type Rule struct {
	Type                 Type
	SourceKind           EntityKind
	TargetKind           EntityKind
	SourceRequiredFields []string
	TargetRequiredFields []string
}

// rules is the static rule table, one entry per known link type.
// Loaded once at process start and never mutated.
var rules = map[Type]Rule{
	PlanToRFQ: {
		Type:                 PlanToRFQ,
		SourceKind:           KindPlan,
		TargetKind:           KindRFQ,
		SourceRequiredFields: []string{"id", "title", "status"},
		TargetRequiredFields: []string{"id", "title", "deadline"},
	},
	RFQToSubmission: {
		Type:                 RFQToSubmission,
		SourceKind:           KindRFQ,
		TargetKind:           KindSubmission,
		SourceRequiredFields: []string{"id", "title"},
		TargetRequiredFields: []string{"id", "supplierId", "submittedAt"},
	},
	SubmissionToEvaluation: {
		Type:                 SubmissionToEvaluation,
		SourceKind:           KindSubmission,
		TargetKind:           KindEvaluation,
		SourceRequiredFields: []string{"id", "supplierId"},
		TargetRequiredFields: []string{"id", "evaluatorId", "status"},
	},
	EvaluationToApproval: {
		Type:                 EvaluationToApproval,
		SourceKind:           KindEvaluation,
		TargetKind:           KindApproval,
		SourceRequiredFields: []string{"id", "totalScore"},
		TargetRequiredFields: []string{"id", "approverId", "decision"},
	},
	ApprovalToAward: {
		Type:                 ApprovalToAward,
		SourceKind:           KindApproval,
		TargetKind:           KindAward,
		SourceRequiredFields: []string{"id", "decision"},
		TargetRequiredFields: []string{"id", "supplierId", "amount"},
	},
	AwardToContract: {
		Type:                 AwardToContract,
		SourceKind:           KindAward,
		TargetKind:           KindContract,
		SourceRequiredFields: []string{"id", "supplierId"},
		TargetRequiredFields: []string{"id", "contractNumber", "signedAt"},
	},
	SubmissionToClarification: {
		Type:                 SubmissionToClarification,
		SourceKind:           KindSubmission,
		TargetKind:           KindClarification,
		SourceRequiredFields: []string{"id", "supplierId"},
		TargetRequiredFields: []string{"id", "question"},
	},
	ClarificationToEvaluation: {
		Type:                 ClarificationToEvaluation,
		SourceKind:           KindClarification,
		TargetKind:           KindEvaluation,
		SourceRequiredFields: []string{"id", "answer"},
		TargetRequiredFields: []string{"id", "evaluatorId"},
	},
}

// RuleFor returns the rule for the given link type. The second return
// is false for unknown types; the caller reports that as a validation
// failure, never a panic.
func RuleFor(t Type) (Rule, bool) {
	r, ok := rules[t]
	return r, ok
}

// KnownType reports whether t is in the rule table.
func KnownType(t Type) bool {
	_, ok := rules[t]
	return ok
}

// AllTypes returns every known link type in canonical chain order
// followed by the clarification branch types.
func AllTypes() []Type {
	out := make([]Type, 0, len(rules))
	out = append(out, ChainSequence...)
	out = append(out, SubmissionToClarification, ClarificationToEvaluation)
	return out
}
