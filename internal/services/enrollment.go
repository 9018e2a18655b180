package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/learnosphere-backend/internal/data/repos"
	types "github.com/yungbote/learnosphere-backend/internal/domain"
	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

const (
	opSetEnrollment   = "Enrollment.SetEnrollment"
	opListEnrollments = "Enrollment.ListEnrollments"
	opGetLearner      = "Enrollment.GetLearner"

	msgEnrolled   = "Enrollment successful!"
	msgUnenrolled = "Unenrollment successful!"
)

type SetEnrollmentInput struct {
	UID      string
	CourseID string
	// Enroll is nil when the caller did not say which direction to move.
	Enroll *bool
}

type SetEnrollmentResult struct {
	Message      string
	EnrollmentID *uuid.UUID
}

// LearnerMembership is the read projection of a learner's enrollments.
type LearnerMembership struct {
	UID               string      `json:"uid"`
	DisplayName       string      `json:"displayName"`
	PhotoURL          string      `json:"photoURL"`
	EnrolledCourseIDs []uuid.UUID `json:"enrolledCourseIds"`
	TotalEnrolled     int         `json:"totalEnrolled"`
}

type EnrollmentService interface {
	SetEnrollment(ctx context.Context, in SetEnrollmentInput) (SetEnrollmentResult, error)
	ListEnrollments(ctx context.Context, credential, uid string) ([]*types.EnrollmentView, error)
	GetLearner(ctx context.Context, credential, uid string) (*LearnerMembership, error)
}

type enrollmentService struct {
	log         *logger.Logger
	aggregate   domainagg.EnrollmentAggregate
	identity    IdentityVerifier
	learners    repos.LearnerRepo
	enrollments repos.EnrollmentRepo
}

func NewEnrollmentService(
	log *logger.Logger,
	aggregate domainagg.EnrollmentAggregate,
	identity IdentityVerifier,
	learners repos.LearnerRepo,
	enrollments repos.EnrollmentRepo,
) EnrollmentService {
	return &enrollmentService{
		log:         log.With("service", "EnrollmentService"),
		aggregate:   aggregate,
		identity:    identity,
		learners:    learners,
		enrollments: enrollments,
	}
}

func (s *enrollmentService) SetEnrollment(ctx context.Context, in SetEnrollmentInput) (SetEnrollmentResult, error) {
	if strings.TrimSpace(in.UID) == "" || strings.TrimSpace(in.CourseID) == "" || in.Enroll == nil {
		return SetEnrollmentResult{}, domainagg.NewError(domainagg.CodeInvalidInput, opSetEnrollment,
			"uid, courseId, and enroll status are required", nil)
	}
	if s.aggregate == nil {
		return SetEnrollmentResult{}, domainagg.NewError(domainagg.CodeTransactionFailed, opSetEnrollment,
			"enrollment aggregate not configured", nil)
	}

	if *in.Enroll {
		res, err := s.aggregate.Enroll(ctx, domainagg.EnrollInput{UID: in.UID, CourseID: in.CourseID})
		if err != nil {
			return SetEnrollmentResult{}, err
		}
		id := res.EnrollmentID
		return SetEnrollmentResult{Message: msgEnrolled, EnrollmentID: &id}, nil
	}

	if _, err := s.aggregate.Unenroll(ctx, domainagg.UnenrollInput{UID: in.UID, CourseID: in.CourseID}); err != nil {
		return SetEnrollmentResult{}, err
	}
	return SetEnrollmentResult{Message: msgUnenrolled}, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, credential, uid string) ([]*types.EnrollmentView, error) {
	uid, err := s.authorizeOwner(ctx, opListEnrollments, credential, uid)
	if err != nil {
		return nil, err
	}
	views, err := s.enrollments.ListViewsByUID(dbctx.Context{Ctx: ctx}, uid)
	if err != nil {
		s.log.Error("list enrollments failed", "uid", uid, "error", err)
		return nil, domainagg.Wrap(domainagg.CodeTransactionFailed, opListEnrollments, fmt.Errorf("list enrollments: %w", err))
	}
	return views, nil
}

func (s *enrollmentService) GetLearner(ctx context.Context, credential, uid string) (*LearnerMembership, error) {
	uid, err := s.authorizeOwner(ctx, opGetLearner, credential, uid)
	if err != nil {
		return nil, err
	}
	rows, err := s.learners.GetByUIDs(dbctx.Context{Ctx: ctx}, []string{uid})
	if err != nil {
		s.log.Error("load learner failed", "uid", uid, "error", err)
		return nil, domainagg.Wrap(domainagg.CodeTransactionFailed, opGetLearner, fmt.Errorf("load learner: %w", err))
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, domainagg.NewError(domainagg.CodeLearnerNotFound, opGetLearner, "learner not found", nil)
	}
	l := rows[0]
	ids := make([]uuid.UUID, 0, len(l.EnrolledCourseIDs))
	ids = append(ids, l.EnrolledCourseIDs...)
	return &LearnerMembership{
		UID:               l.UID,
		DisplayName:       l.DisplayName,
		PhotoURL:          l.PhotoURL,
		EnrolledCourseIDs: ids,
		TotalEnrolled:     l.TotalEnrolled,
	}, nil
}

// authorizeOwner verifies credential and requires it to belong to uid.
func (s *enrollmentService) authorizeOwner(ctx context.Context, op, credential, uid string) (string, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return "", domainagg.NewError(domainagg.CodeInvalidInput, op, "uid is required", nil)
	}
	if s.identity == nil {
		return "", domainagg.NewError(domainagg.CodeUnauthorized, op, "unauthorized access", nil)
	}
	caller, err := s.identity.Verify(ctx, credential)
	if err != nil {
		if !errors.Is(err, ErrMissingCredential) {
			s.log.Debug("credential rejected", "op", op, "error", err)
		}
		return "", domainagg.NewError(domainagg.CodeUnauthorized, op, "unauthorized access", err)
	}
	if caller != uid {
		return "", domainagg.NewError(domainagg.CodeForbidden, op, "forbidden access", nil)
	}
	return uid, nil
}
