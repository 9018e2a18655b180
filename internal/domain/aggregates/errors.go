package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes aggregate failure semantics.
type ErrorCode string

const (
	CodeInvalidInput      ErrorCode = "invalid_input"
	CodeCourseNotFound    ErrorCode = "course_not_found"
	CodeLearnerNotFound   ErrorCode = "learner_not_found"
	CodeAlreadyEnrolled   ErrorCode = "already_enrolled"
	CodeNotEnrolled       ErrorCode = "not_enrolled"
	CodeCapacityExhausted ErrorCode = "capacity_exhausted"
	CodeForbidden         ErrorCode = "forbidden"
	CodeUnauthorized      ErrorCode = "unauthorized"
	// CodeTransactionFailed covers every infrastructure failure inside a unit of work.
	// The underlying cause is always reachable through errors.Unwrap.
	CodeTransactionFailed ErrorCode = "transaction_failed"
)

// Error is the canonical aggregate error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with aggregate error semantics.
// An error that already carries an aggregate code is returned unchanged.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	if CodeOf(err) != "" {
		return err
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// IsDomain reports whether code is a business-rule outcome rather than an infrastructure failure.
func IsDomain(code ErrorCode) bool {
	switch code {
	case CodeInvalidInput, CodeCourseNotFound, CodeLearnerNotFound, CodeAlreadyEnrolled,
		CodeNotEnrolled, CodeCapacityExhausted, CodeForbidden, CodeUnauthorized:
		return true
	default:
		return false
	}
}
