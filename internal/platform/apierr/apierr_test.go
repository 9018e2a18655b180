package apierr

import (
	"errors"
	"net/http"
	"testing"

	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
)

func TestFromMapsAggregateCodes(t *testing.T) {
	cases := []struct {
		code   domainagg.ErrorCode
		status int
	}{
		{domainagg.CodeInvalidInput, http.StatusBadRequest},
		{domainagg.CodeUnauthorized, http.StatusUnauthorized},
		{domainagg.CodeForbidden, http.StatusForbidden},
		{domainagg.CodeCourseNotFound, http.StatusNotFound},
		{domainagg.CodeLearnerNotFound, http.StatusNotFound},
		{domainagg.CodeAlreadyEnrolled, http.StatusConflict},
		{domainagg.CodeNotEnrolled, http.StatusConflict},
		{domainagg.CodeCapacityExhausted, http.StatusConflict},
		{domainagg.CodeTransactionFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got := From(domainagg.NewError(tc.code, "op", "msg", nil))
		if got.Status != tc.status {
			t.Fatalf("%s: status want=%d got=%d", tc.code, tc.status, got.Status)
		}
		if got.Code != string(tc.code) {
			t.Fatalf("%s: code want=%s got=%s", tc.code, tc.code, got.Code)
		}
	}
}

func TestFromUnknownErrorIsInternal(t *testing.T) {
	got := From(errors.New("connection reset"))
	if got.Status != http.StatusInternalServerError {
		t.Fatalf("status: %d", got.Status)
	}
	if got.PublicMessage() != "internal error" {
		t.Fatalf("leaked cause: %q", got.PublicMessage())
	}
}

func TestFromPassesThroughAPIError(t *testing.T) {
	in := New(http.StatusUnauthorized, "unauthorized", errors.New("missing credential"))
	if got := From(in); got != in {
		t.Fatalf("expected passthrough")
	}
}
