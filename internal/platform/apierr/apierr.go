package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// StatusFor maps an aggregate error code to its HTTP status.
func StatusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeInvalidInput:
		return http.StatusBadRequest
	case domainagg.CodeUnauthorized:
		return http.StatusUnauthorized
	case domainagg.CodeForbidden:
		return http.StatusForbidden
	case domainagg.CodeCourseNotFound, domainagg.CodeLearnerNotFound:
		return http.StatusNotFound
	case domainagg.CodeAlreadyEnrolled, domainagg.CodeNotEnrolled, domainagg.CodeCapacityExhausted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// From converts any error into an *Error. Existing *Error values pass through; aggregate
// errors keep their code; anything else becomes an opaque 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	code := domainagg.CodeOf(err)
	if code == "" {
		return New(http.StatusInternalServerError, string(domainagg.CodeTransactionFailed), err)
	}
	return New(StatusFor(code), string(code), err)
}

// PublicMessage is the client-facing message for e. Infrastructure causes are never exposed.
func (e *Error) PublicMessage() string {
	if e == nil {
		return ""
	}
	if e.Status >= http.StatusInternalServerError {
		return "internal error"
	}
	var aggErr *domainagg.Error
	if errors.As(e.Err, &aggErr) && aggErr.Message != "" {
		return aggErr.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}
