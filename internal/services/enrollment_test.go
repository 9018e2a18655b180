package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/learnosphere-backend/internal/data/repos"
	"github.com/yungbote/learnosphere-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
)

type fakeAggregate struct {
	enrollCalls   []domainagg.EnrollInput
	unenrollCalls []domainagg.UnenrollInput
	err           error
	enrollmentID  uuid.UUID
}

func (f *fakeAggregate) Contract() domainagg.Contract { return domainagg.EnrollmentAggregateContract }

func (f *fakeAggregate) Enroll(_ context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error) {
	f.enrollCalls = append(f.enrollCalls, in)
	if f.err != nil {
		return domainagg.EnrollResult{}, f.err
	}
	return domainagg.EnrollResult{EnrollmentID: f.enrollmentID, UID: in.UID}, nil
}

func (f *fakeAggregate) Unenroll(_ context.Context, in domainagg.UnenrollInput) (domainagg.UnenrollResult, error) {
	f.unenrollCalls = append(f.unenrollCalls, in)
	if f.err != nil {
		return domainagg.UnenrollResult{}, f.err
	}
	return domainagg.UnenrollResult{UID: in.UID}, nil
}

type staticVerifier map[string]string

func (v staticVerifier) Verify(_ context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrMissingCredential
	}
	uid, ok := v[credential]
	if !ok {
		return "", ErrInvalidCredential
	}
	return uid, nil
}

func boolPtr(b bool) *bool { return &b }

func TestSetEnrollmentRoutesByDirection(t *testing.T) {
	agg := &fakeAggregate{enrollmentID: uuid.New()}
	svc := NewEnrollmentService(testutil.Logger(t), agg, nil, nil, nil)
	courseID := uuid.NewString()

	res, err := svc.SetEnrollment(context.Background(), SetEnrollmentInput{UID: "u1", CourseID: courseID, Enroll: boolPtr(true)})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if res.Message != msgEnrolled || res.EnrollmentID == nil || *res.EnrollmentID != agg.enrollmentID {
		t.Fatalf("unexpected enroll result: %+v", res)
	}

	res, err = svc.SetEnrollment(context.Background(), SetEnrollmentInput{UID: "u1", CourseID: courseID, Enroll: boolPtr(false)})
	if err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	if res.Message != msgUnenrolled || res.EnrollmentID != nil {
		t.Fatalf("unexpected unenroll result: %+v", res)
	}
	if len(agg.enrollCalls) != 1 || len(agg.unenrollCalls) != 1 {
		t.Fatalf("calls: enroll=%d unenroll=%d", len(agg.enrollCalls), len(agg.unenrollCalls))
	}
}

func TestSetEnrollmentRequiresAllFields(t *testing.T) {
	agg := &fakeAggregate{}
	svc := NewEnrollmentService(testutil.Logger(t), agg, nil, nil, nil)

	for _, in := range []SetEnrollmentInput{
		{UID: "", CourseID: uuid.NewString(), Enroll: boolPtr(true)},
		{UID: "u1", CourseID: "", Enroll: boolPtr(true)},
		{UID: "u1", CourseID: uuid.NewString()},
	} {
		_, err := svc.SetEnrollment(context.Background(), in)
		if !domainagg.IsCode(err, domainagg.CodeInvalidInput) {
			t.Fatalf("%+v: want invalid_input got=%v", in, err)
		}
	}
	if len(agg.enrollCalls)+len(agg.unenrollCalls) != 0 {
		t.Fatalf("aggregate must not be called on invalid input")
	}
}

func TestSetEnrollmentPassesDomainErrors(t *testing.T) {
	agg := &fakeAggregate{err: domainagg.NewError(domainagg.CodeCapacityExhausted, "x", "full", nil)}
	svc := NewEnrollmentService(testutil.Logger(t), agg, nil, nil, nil)
	_, err := svc.SetEnrollment(context.Background(), SetEnrollmentInput{UID: "u1", CourseID: uuid.NewString(), Enroll: boolPtr(true)})
	if !domainagg.IsCode(err, domainagg.CodeCapacityExhausted) {
		t.Fatalf("want capacity_exhausted got=%v", err)
	}
}

func TestListEnrollmentsChecksIdentity(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)

	uid := testutil.UID("reader")
	testutil.SeedLearner(t, ctx, db, uid)
	course := testutil.SeedCourse(t, ctx, db, 3)
	testutil.SeedEnrollment(t, ctx, db, uid, course.ID)

	verifier := staticVerifier{"good": uid, "other": "someone-else"}
	svc := NewEnrollmentService(log, &fakeAggregate{}, verifier, repos.NewLearnerRepo(db, log), repos.NewEnrollmentRepo(db, log))

	views, err := svc.ListEnrollments(ctx, "good", uid)
	if err != nil {
		t.Fatalf("ListEnrollments: %v", err)
	}
	if len(views) != 1 || views[0].CourseID != course.ID || views[0].CourseTitle != course.Title {
		t.Fatalf("unexpected views: %+v", views)
	}

	if _, err := svc.ListEnrollments(ctx, "", uid); !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
		t.Fatalf("missing credential: want unauthorized got=%v", err)
	}
	if _, err := svc.ListEnrollments(ctx, "bogus", uid); !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
		t.Fatalf("bad credential: want unauthorized got=%v", err)
	} else if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("verifier cause lost: %v", err)
	}
	if _, err := svc.ListEnrollments(ctx, "other", uid); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("mismatched uid: want forbidden got=%v", err)
	}
}

func TestGetLearnerProjection(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)

	uid := testutil.UID("member")
	testutil.SeedLearner(t, ctx, db, uid)
	verifier := staticVerifier{"good": uid, "ghost": "ghost-" + uuid.NewString()}
	svc := NewEnrollmentService(log, &fakeAggregate{}, verifier, repos.NewLearnerRepo(db, log), repos.NewEnrollmentRepo(db, log))

	got, err := svc.GetLearner(ctx, "good", uid)
	if err != nil {
		t.Fatalf("GetLearner: %v", err)
	}
	if got.UID != uid || got.TotalEnrolled != 0 || got.EnrolledCourseIDs == nil {
		t.Fatalf("unexpected projection: %+v", got)
	}

	ghost := verifier["ghost"]
	if _, err := svc.GetLearner(ctx, "ghost", ghost); !domainagg.IsCode(err, domainagg.CodeLearnerNotFound) {
		t.Fatalf("missing learner: want learner_not_found got=%v", err)
	}
}

func TestAuthorizeOwnerWithoutVerifier(t *testing.T) {
	svc := NewEnrollmentService(testutil.Logger(t), &fakeAggregate{}, nil, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := svc.ListEnrollments(ctx, "token", "u1"); !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
		t.Fatalf("want unauthorized got=%v", err)
	}
	if _, err := svc.ListEnrollments(ctx, "token", " "); !domainagg.IsCode(err, domainagg.CodeInvalidInput) {
		t.Fatalf("want invalid_input got=%v", err)
	}
}
