package gate

import (
	"errors"
	"fmt"
)

// Code categorizes gate errors. The set is closed: every failure that crosses
// the Submit boundary carries exactly one of these codes.
type Code string

const (
	// CodeCaseNotFound indicates the referenced case identity is absent.
	CodeCaseNotFound Code = "CASE_NOT_FOUND"

	// CodeObjectNotFound indicates the referenced document identity is
	// absent, scoped to a case where the operation is case-scoped.
	CodeObjectNotFound Code = "OBJECT_NOT_FOUND"

	// CodeIllegalTransition indicates the requested status transition is not
	// in the allowed set for the document's current status.
	CodeIllegalTransition Code = "ILLEGAL_STATUS_TRANSITION"

	// CodeNamingNonCompliant indicates a proposed filename fails the naming
	// standard pattern.
	CodeNamingNonCompliant Code = "FILENAME_NON_COMPLIANT"

	// CodeMissingJustification indicates link creation lacks sufficient
	// justification text.
	CodeMissingJustification Code = "MISSING_JUSTIFICATION"

	// CodeIsolationViolation indicates a link would cross case boundaries.
	CodeIsolationViolation Code = "BRANCH_ISOLATION_VIOLATION"

	// CodeValidationFailed is the generic fallback for unclassified failures.
	CodeValidationFailed Code = "VALIDATION_FAILED"
)

// Class maps an error code onto a transport status class. The gate itself is
// transport-agnostic; boundaries use the class to pick a wire status.
type Class string

const (
	ClassNotFound   Class = "not_found"
	ClassBadRequest Class = "bad_request"
)

// Error is the single failure type crossing the Submit boundary.
type Error struct {
	// Code identifies the error category.
	Code Code `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details carries structured context (ids, states, names).
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Class returns the transport status class for this error.
func (e *Error) Class() Class {
	switch e.Code {
	case CodeCaseNotFound, CodeObjectNotFound:
		return ClassNotFound
	default:
		return ClassBadRequest
	}
}

// AsError extracts a gate *Error from err, unwrapping as needed.
func AsError(err error) (*Error, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// IsNotFound reports whether err carries one of the two not-found codes.
func IsNotFound(err error) bool {
	if ge, ok := AsError(err); ok {
		return ge.Class() == ClassNotFound
	}
	return false
}

func newCaseNotFound(caseID string) *Error {
	return &Error{
		Code:    CodeCaseNotFound,
		Message: fmt.Sprintf("case %q not found", caseID),
		Details: map[string]string{"case_id": caseID},
	}
}

func newObjectNotFound(docID string) *Error {
	return &Error{
		Code:    CodeObjectNotFound,
		Message: fmt.Sprintf("document %q not found", docID),
		Details: map[string]string{"document_id": docID},
	}
}

func newIllegalTransition(from, to string) *Error {
	return &Error{
		Code:    CodeIllegalTransition,
		Message: fmt.Sprintf("transition %s -> %s is not allowed", from, to),
		Details: map[string]string{"from_status": from, "to_status": to},
	}
}

func newNamingNonCompliant(name string) *Error {
	return &Error{
		Code:    CodeNamingNonCompliant,
		Message: fmt.Sprintf("filename %q does not match the naming standard", name),
		Details: map[string]string{"new_name": name},
	}
}

func newMissingJustification() *Error {
	return &Error{
		Code:    CodeMissingJustification,
		Message: "link justification must be at least 10 characters",
	}
}

func newIsolationViolation(fromCase, toCase string) *Error {
	return &Error{
		Code:    CodeIsolationViolation,
		Message: fmt.Sprintf("link would cross cases %q and %q", fromCase, toCase),
		Details: map[string]string{"from_case_id": fromCase, "to_case_id": toCase},
	}
}

func newValidationFailed(msg string) *Error {
	return &Error{
		Code:    CodeValidationFailed,
		Message: msg,
	}
}
