package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/learnosphere-backend/internal/data/repos/testutil"
)

func TestParseRejectsBadFixtures(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "courses:\n  - title: a\n    price: 3\n",
		"missing title": "courses:\n  - seats: 3\n",
		"negative":      "courses:\n  - title: a\n    seats: -1\n",
		"bad id":        "courses:\n  - id: nope\n    title: a\n",
		"missing uid":   "learners:\n  - display_name: x\n",
		"duplicate uid": "learners:\n  - uid: a\n  - uid: a\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	courseID := uuid.New()
	uid := testutil.UID("seed")
	doc := "courses:\n" +
		"  - id: " + courseID.String() + "\n" +
		"    title: Go Concurrency\n" +
		"    category: programming\n" +
		"    seats: 12\n" +
		"learners:\n" +
		"  - uid: " + uid + "\n" +
		"    display_name: Seed Learner\n"

	fx, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Apply(db, testutil.Logger(t), fx)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Courses != 1 || res.Learners != 1 {
		t.Fatalf("first apply: %+v", res)
	}
	res, err = Apply(db, testutil.Logger(t), fx)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if res.Courses != 0 || res.Learners != 0 {
		t.Fatalf("second apply should insert nothing: %+v", res)
	}

	ctx := context.Background()
	c := testutil.ReloadCourse(t, ctx, db, courseID)
	if c.RemainingSeats != 12 || c.TotalEnrollment != 0 {
		t.Fatalf("unexpected course: %+v", c)
	}
	l := testutil.ReloadLearner(t, ctx, db, uid)
	if l.TotalEnrolled != 0 || len(l.EnrolledCourseIDs) != 0 {
		t.Fatalf("unexpected learner: %+v", l)
	}
}
