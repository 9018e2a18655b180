package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	OpEnroll   = "Learning.Enrollment.Enroll"
	OpUnenroll = "Learning.Enrollment.Unenroll"
)

var EnrollmentAggregateContract = Contract{
	Name:   "Learning.EnrollmentAggregate",
	Writes: []string{OpEnroll, OpUnenroll},
	Lock:   LockScopeCourse,
	Notes:  "Owns course seat counters, the learner membership set and the enrollment ledger.",
}

// EnrollmentAggregate moves a (learner, course) pair between NotEnrolled and Enrolled.
//
// Write method failures return *aggregates.Error with codes:
// CodeInvalidInput, CodeCourseNotFound, CodeLearnerNotFound, CodeAlreadyEnrolled,
// CodeNotEnrolled, CodeCapacityExhausted, CodeTransactionFailed.
type EnrollmentAggregate interface {
	Aggregate

	// Enroll creates the ledger entry, reserves one seat and adds the course to the learner's set.
	Enroll(ctx context.Context, in EnrollInput) (EnrollResult, error)

	// Unenroll deletes the ledger entry, releases the seat and removes the course from the learner's set.
	Unenroll(ctx context.Context, in UnenrollInput) (UnenrollResult, error)
}

type EnrollInput struct {
	UID      string
	CourseID string
}

type EnrollResult struct {
	EnrollmentID uuid.UUID
	CourseID     uuid.UUID
	UID          string
	EnrolledAt   time.Time
}

type UnenrollInput struct {
	UID      string
	CourseID string
}

type UnenrollResult struct {
	UID          string
	CourseID     uuid.UUID
	EnrollmentID uuid.UUID
}
