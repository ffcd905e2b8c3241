package link

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorCode categorizes link creation and validation
// failures.
type ValidationErrorCode string

const (
	// ErrCodeUnknownType indicates the link type is not in the rule
	// table.
	ErrCodeUnknownType ValidationErrorCode = "UNKNOWN_LINK_TYPE"

	// ErrCodeMissingIdentifier indicates the source or target ID is
	// empty.
	ErrCodeMissingIdentifier ValidationErrorCode = "MISSING_IDENTIFIER"

	// ErrCodeValidationFailed indicates required snapshot fields are
	// absent.
	ErrCodeValidationFailed ValidationErrorCode = "VALIDATION_FAILED"
)

// ValidationError is returned when a link may not be created. It
// carries the full set of missing fields so the caller can remediate
// in one round trip.
type ValidationError struct {
	Code          ValidationErrorCode
	Type          Type
	MissingSource []string
	MissingTarget []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Code {
	case ErrCodeUnknownType:
		return fmt.Sprintf("%s: unknown link type %q", e.Code, e.Type)
	case ErrCodeMissingIdentifier:
		return fmt.Sprintf("%s: source and target identifiers are required for %q links", e.Code, e.Type)
	case ErrCodeValidationFailed:
		if len(e.MissingSource) > 0 {
			return fmt.Sprintf("%s: source entity missing required fields: %s", e.Code, strings.Join(e.MissingSource, ", "))
		}
		return fmt.Sprintf("%s: target entity missing required fields: %s", e.Code, strings.Join(e.MissingTarget, ", "))
	}
	return fmt.Sprintf("%s: link validation failed", e.Code)
}

// NotFoundError is returned when a link ID is absent from the supplied
// collection.
type NotFoundError struct {
	LinkID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("link %q not found", e.LinkID)
}

// IsUnknownType returns true if the error is an unknown-type failure.
// Uses errors.As to handle wrapped errors.
func IsUnknownType(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Code == ErrCodeUnknownType
}

// IsMissingIdentifier returns true if the error is a missing-identifier
// failure.
func IsMissingIdentifier(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Code == ErrCodeMissingIdentifier
}

// IsNotFound returns true if the error is a link-not-found failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
