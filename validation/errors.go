package validation

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Structural covers group/field count and name mismatches, and
	// submissions against an inactive prefab.
	Structural Kind = iota
	// EmptyAnswer marks a required leaf with no value.
	EmptyAnswer
	// TypeMismatch marks a value that fails type-specific parsing.
	TypeMismatch
	// RuleViolation marks a value rejected by a registered rule.
	RuleViolation
)

// Error is the single error produced by a failed match. Validation is
// fail-fast: the first failing check aborts the whole operation, so
// there is never more than one.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the validation kind out of err, unwrapping as
// needed. The second return is false for non-validation errors.
func KindOf(err error) (Kind, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind, true
	}
	return 0, false
}
