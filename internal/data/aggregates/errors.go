package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

var (
	// ErrInvalidInput indicates malformed or missing caller input.
	ErrInvalidInput = errors.New("enrollment invalid input")
	// ErrCourseNotFound indicates the referenced course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrLearnerNotFound indicates the referenced learner does not exist.
	ErrLearnerNotFound = errors.New("learner not found")
	// ErrAlreadyEnrolled indicates an active record already exists for the pair.
	ErrAlreadyEnrolled = errors.New("already enrolled")
	// ErrNotEnrolled indicates no active record exists for the pair.
	ErrNotEnrolled = errors.New("not enrolled")
	// ErrCapacityExhausted indicates the course has no remaining seats.
	ErrCapacityExhausted = errors.New("capacity exhausted")
	// ErrHandleClosed is returned when a unit of work is used after Commit or Abort.
	ErrHandleClosed = errors.New("unit of work already closed")
)

func InvalidInputError(msg string) error {
	return errors.Join(ErrInvalidInput, errors.New(strings.TrimSpace(msg)))
}

func CourseNotFoundError(msg string) error {
	return errors.Join(ErrCourseNotFound, errors.New(strings.TrimSpace(msg)))
}

func LearnerNotFoundError(msg string) error {
	return errors.Join(ErrLearnerNotFound, errors.New(strings.TrimSpace(msg)))
}

func AlreadyEnrolledError(msg string) error {
	return errors.Join(ErrAlreadyEnrolled, errors.New(strings.TrimSpace(msg)))
}

func NotEnrolledError(msg string) error {
	return errors.Join(ErrNotEnrolled, errors.New(strings.TrimSpace(msg)))
}

func CapacityExhaustedError(msg string) error {
	return errors.Join(ErrCapacityExhausted, errors.New(strings.TrimSpace(msg)))
}

const (
	msgAlreadyEnrolled   = "learner is already enrolled in this course"
	msgCapacityExhausted = "course has no remaining seats"
)

// MapError maps infrastructure/domain failures into aggregate error codes.
// Anything that is not a recognised domain outcome becomes CodeTransactionFailed with the
// underlying error as its cause.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domainagg.Error); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return domainError(domainagg.CodeInvalidInput, op, err)
	case errors.Is(err, ErrCourseNotFound):
		return domainError(domainagg.CodeCourseNotFound, op, err)
	case errors.Is(err, ErrLearnerNotFound):
		return domainError(domainagg.CodeLearnerNotFound, op, err)
	case errors.Is(err, ErrAlreadyEnrolled):
		return domainError(domainagg.CodeAlreadyEnrolled, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainagg.NewError(domainagg.CodeAlreadyEnrolled, op, msgAlreadyEnrolled, err)
	case errors.Is(err, ErrNotEnrolled):
		return domainError(domainagg.CodeNotEnrolled, op, err)
	case errors.Is(err, ErrCapacityExhausted):
		return domainError(domainagg.CodeCapacityExhausted, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeTransactionFailed, op, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Repos report absence as nil rows; a bare not-found here means a row vanished mid-write.
		return domainagg.Wrap(domainagg.CodeTransactionFailed, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.NewError(domainagg.CodeAlreadyEnrolled, op, msgAlreadyEnrolled, err) // unique_violation on (uid, course_id)
		case "23514":
			return domainagg.NewError(domainagg.CodeCapacityExhausted, op, msgCapacityExhausted, err) // check_violation on seat counters
		case "40001", "40P01", "55P03":
			return domainagg.Wrap(domainagg.CodeTransactionFailed, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint failed"):
		return domainagg.NewError(domainagg.CodeAlreadyEnrolled, op, msgAlreadyEnrolled, err)
	case strings.Contains(msg, "check constraint failed: chk_course_remaining_seats"):
		return domainagg.NewError(domainagg.CodeCapacityExhausted, op, msgCapacityExhausted, err)
	default:
		return domainagg.Wrap(domainagg.CodeTransactionFailed, op, err)
	}
}

// domainError keeps the human-readable part of a tagged error as the message.
func domainError(code domainagg.ErrorCode, op string, err error) error {
	return domainagg.NewError(code, op, publicMessage(err), err)
}

func publicMessage(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		parts := joined.Unwrap()
		if len(parts) > 1 {
			return parts[len(parts)-1].Error()
		}
	}
	return err.Error()
}
