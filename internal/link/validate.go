package link

import (
	"fmt"
	"strings"
)

// ValidationResult is the outcome of checking a proposed link against
// its type rule.
type ValidationResult struct {
	Valid bool `json:"valid"`

	// Reason is empty when Valid; otherwise it names every missing
	// field in one message.
	Reason string `json:"reason,omitempty"`

	// MissingSource and MissingTarget list the absent required fields
	// in rule order.
	MissingSource []string `json:"missing_source,omitempty"`
	MissingTarget []string `json:"missing_target,omitempty"`
}

// Validate checks a proposed (source, target) snapshot pair against the
// rule for the given link type.
//
// All missing source fields are reported in one call; only when the
// source is complete are target fields checked, again all at once. An
// unknown type is an ordinary invalid result, never a panic.
func Validate(t Type, source, target Snapshot) ValidationResult {
	rule, ok := RuleFor(t)
	if !ok {
		return ValidationResult{
			Valid:  false,
			Reason: fmt.Sprintf("unknown link type %q", t),
		}
	}

	if missing := missingFields(source, rule.SourceRequiredFields); len(missing) > 0 {
		return ValidationResult{
			Valid:         false,
			Reason:        fmt.Sprintf("source %s missing required fields: %s", rule.SourceKind, strings.Join(missing, ", ")),
			MissingSource: missing,
		}
	}

	if missing := missingFields(target, rule.TargetRequiredFields); len(missing) > 0 {
		return ValidationResult{
			Valid:         false,
			Reason:        fmt.Sprintf("target %s missing required fields: %s", rule.TargetKind, strings.Join(missing, ", ")),
			MissingTarget: missing,
		}
	}

	return ValidationResult{Valid: true}
}

// missingFields returns the required fields the snapshot lacks, in
// rule order.
func missingFields(s Snapshot, required []string) []string {
	var missing []string
	for _, field := range required {
		if !s.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}
