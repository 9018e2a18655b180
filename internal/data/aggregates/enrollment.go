package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/learnosphere-backend/internal/data/repos"
	types "github.com/yungbote/learnosphere-backend/internal/domain"
	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type EnrollmentAggregateDeps struct {
	Base BaseDeps

	Courses     repos.CourseRepo
	Learners    repos.LearnerRepo
	Enrollments repos.EnrollmentRepo

	// Now stamps new enrollment records; defaults to time.Now.
	Now func() time.Time
}

type enrollmentAggregate struct {
	deps       EnrollmentAggregateDeps
	capacity   CapacityLedger
	membership MembershipIndex
	log        *logger.Logger
	tracer     trace.Tracer
}

func NewEnrollmentAggregate(deps EnrollmentAggregateDeps) domainagg.EnrollmentAggregate {
	deps.Base = deps.Base.withDefaults()
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &enrollmentAggregate{
		deps:       deps,
		capacity:   CapacityLedger{Courses: deps.Courses},
		membership: MembershipIndex{Learners: deps.Learners},
		log:        deps.Base.Log.With("aggregate", domainagg.EnrollmentAggregateContract.Name),
		tracer:     otel.Tracer("learnosphere/aggregates"),
	}
}

func (a *enrollmentAggregate) Contract() domainagg.Contract {
	return domainagg.EnrollmentAggregateContract
}

func (a *enrollmentAggregate) Enroll(ctx context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error) {
	const op = domainagg.OpEnroll
	var out domainagg.EnrollResult

	ctx, span := a.tracer.Start(ctx, op)
	defer span.End()

	uid, courseID, err := parseEnrollmentKey(op, in.UID, in.CourseID)
	if err != nil {
		return out, endSpan(span, err)
	}
	span.SetAttributes(attribute.String("course_id", courseID.String()))
	if err := a.requireRepos(op); err != nil {
		return out, endSpan(span, err)
	}

	enrolledAt := a.deps.Now().UTC()
	err = executeLockedWrite(ctx, a.deps.Base, op, courseID, func(dbc dbctx.Context) error {
		course, err := a.deps.Courses.GetByIDForUpdate(dbc, courseID)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		if course == nil {
			return CourseNotFoundError(fmt.Sprintf("course %s not found", courseID))
		}
		learner, err := a.deps.Learners.GetByUIDForUpdate(dbc, uid)
		if err != nil {
			return fmt.Errorf("load learner: %w", err)
		}
		if learner == nil {
			return LearnerNotFoundError(fmt.Sprintf("learner %s not found", uid))
		}
		active, err := a.deps.Enrollments.GetActive(dbc, uid, courseID)
		if err != nil {
			return fmt.Errorf("load enrollment: %w", err)
		}
		if active != nil {
			return AlreadyEnrolledError(fmt.Sprintf("learner is already enrolled in course %s", courseID))
		}
		if course.RemainingSeats <= 0 {
			return CapacityExhaustedError(fmt.Sprintf("course %s has no remaining seats", courseID))
		}

		row, err := a.deps.Enrollments.Create(dbc, &types.Enrollment{
			ID:             uuid.New(),
			UID:            uid,
			CourseID:       courseID,
			EnrollmentDate: enrolledAt,
		})
		if err != nil {
			return fmt.Errorf("create enrollment: %w", err)
		}
		if err := a.capacity.TryReserveSeat(dbc, courseID); err != nil {
			return err
		}
		added, err := a.membership.AddMembership(dbc, uid, courseID)
		if err != nil {
			return err
		}
		if !added {
			a.log.Warn("membership already contained course without an enrollment record", "uid", uid, "course_id", courseID)
		}

		out = domainagg.EnrollResult{
			EnrollmentID: row.ID,
			CourseID:     courseID,
			UID:          uid,
			EnrolledAt:   row.EnrollmentDate,
		}
		return nil
	})
	if err != nil {
		a.logFailure(op, uid, courseID, err)
		return domainagg.EnrollResult{}, endSpan(span, err)
	}
	span.SetAttributes(attribute.String("enrollment_id", out.EnrollmentID.String()))
	a.log.Debug("enrolled", "uid", uid, "course_id", courseID, "enrollment_id", out.EnrollmentID)
	return out, endSpan(span, nil)
}

func (a *enrollmentAggregate) Unenroll(ctx context.Context, in domainagg.UnenrollInput) (domainagg.UnenrollResult, error) {
	const op = domainagg.OpUnenroll
	var out domainagg.UnenrollResult

	ctx, span := a.tracer.Start(ctx, op)
	defer span.End()

	uid, courseID, err := parseEnrollmentKey(op, in.UID, in.CourseID)
	if err != nil {
		return out, endSpan(span, err)
	}
	span.SetAttributes(attribute.String("course_id", courseID.String()))
	if err := a.requireRepos(op); err != nil {
		return out, endSpan(span, err)
	}

	err = executeLockedWrite(ctx, a.deps.Base, op, courseID, func(dbc dbctx.Context) error {
		// Course row first, then learner: the same lock order as Enroll.
		course, err := a.deps.Courses.GetByIDForUpdate(dbc, courseID)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		active, err := a.deps.Enrollments.GetActive(dbc, uid, courseID)
		if err != nil {
			return fmt.Errorf("load enrollment: %w", err)
		}
		if active == nil {
			return NotEnrolledError(fmt.Sprintf("learner is not enrolled in course %s", courseID))
		}
		if course == nil {
			return CourseNotFoundError(fmt.Sprintf("course %s not found", courseID))
		}
		learner, err := a.deps.Learners.GetByUIDForUpdate(dbc, uid)
		if err != nil {
			return fmt.Errorf("load learner: %w", err)
		}
		if learner == nil {
			return LearnerNotFoundError(fmt.Sprintf("learner %s not found", uid))
		}

		deleted, err := a.deps.Enrollments.DeleteByID(dbc, active.ID)
		if err != nil {
			return fmt.Errorf("delete enrollment: %w", err)
		}
		if !deleted {
			return NotEnrolledError(fmt.Sprintf("learner is not enrolled in course %s", courseID))
		}
		if err := a.capacity.ReleaseSeat(dbc, courseID); err != nil {
			return err
		}
		removed, err := a.membership.RemoveMembership(dbc, uid, courseID)
		if err != nil {
			return err
		}
		if !removed {
			a.log.Warn("membership did not contain course with an enrollment record", "uid", uid, "course_id", courseID)
		}

		out = domainagg.UnenrollResult{
			UID:          uid,
			CourseID:     courseID,
			EnrollmentID: active.ID,
		}
		return nil
	})
	if err != nil {
		a.logFailure(op, uid, courseID, err)
		return domainagg.UnenrollResult{}, endSpan(span, err)
	}
	a.log.Debug("unenrolled", "uid", uid, "course_id", courseID, "enrollment_id", out.EnrollmentID)
	return out, endSpan(span, nil)
}

func (a *enrollmentAggregate) requireRepos(op string) error {
	if a.deps.Courses == nil || a.deps.Learners == nil || a.deps.Enrollments == nil {
		return domainagg.NewError(domainagg.CodeTransactionFailed, op, "enrollment aggregate repos not configured", nil)
	}
	return nil
}

func (a *enrollmentAggregate) logFailure(op, uid string, courseID uuid.UUID, err error) {
	code := domainagg.CodeOf(err)
	if domainagg.IsDomain(code) {
		a.log.Debug("enrollment rejected", "op", op, "uid", uid, "course_id", courseID, "code", code)
		return
	}
	a.log.Warn("enrollment transaction failed", "op", op, "uid", uid, "course_id", courseID, "error", err)
}

// parseEnrollmentKey validates the pair before any unit of work is opened.
func parseEnrollmentKey(op, rawUID, rawCourseID string) (string, uuid.UUID, error) {
	uid := strings.TrimSpace(rawUID)
	if uid == "" {
		return "", uuid.Nil, domainagg.NewError(domainagg.CodeInvalidInput, op, "uid is required", nil)
	}
	raw := strings.TrimSpace(rawCourseID)
	if raw == "" {
		return "", uuid.Nil, domainagg.NewError(domainagg.CodeInvalidInput, op, "courseId is required", nil)
	}
	courseID, err := uuid.Parse(raw)
	if err != nil || courseID == uuid.Nil {
		return "", uuid.Nil, domainagg.NewError(domainagg.CodeInvalidInput, op, "courseId is malformed", err)
	}
	return uid, courseID, nil
}

func endSpan(span trace.Span, err error) error {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return nil
	}
	span.SetAttributes(attribute.String("error.code", string(domainagg.CodeOf(err))))
	if !domainagg.IsDomain(domainagg.CodeOf(err)) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
