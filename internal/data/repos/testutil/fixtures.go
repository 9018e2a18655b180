package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/learnosphere-backend/internal/domain"
)

func SeedLearner(tb testing.TB, ctx context.Context, tx *gorm.DB, uid string) *types.Learner {
	tb.Helper()
	l := &types.Learner{
		ID:                uuid.New(),
		UID:               uid,
		DisplayName:       "Learner " + uid,
		EnrolledCourseIDs: datatypes.JSONSlice[uuid.UUID]{},
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed learner: %v", err)
	}
	return l
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, seats int) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:             uuid.New(),
		Title:          "course",
		PhotoURL:       "https://example.com/course.png",
		Category:       "programming",
		MentorUID:      "mentor-" + uuid.NewString()[:8],
		RemainingSeats: seats,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, uid string, courseID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:       uuid.New(),
		UID:      uid,
		CourseID: courseID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

// UID returns a unique learner uid so tests can share a database.
func UID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:12]
}

func ReloadCourse(tb testing.TB, ctx context.Context, db *gorm.DB, id uuid.UUID) *types.Course {
	tb.Helper()
	var c types.Course
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		tb.Fatalf("reload course: %v", err)
	}
	return &c
}

func ReloadLearner(tb testing.TB, ctx context.Context, db *gorm.DB, uid string) *types.Learner {
	tb.Helper()
	var l types.Learner
	if err := db.WithContext(ctx).Where("uid = ?", uid).First(&l).Error; err != nil {
		tb.Fatalf("reload learner: %v", err)
	}
	return &l
}

func CountEnrollments(tb testing.TB, ctx context.Context, db *gorm.DB, uid string, courseID uuid.UUID) int64 {
	tb.Helper()
	var n int64
	if err := db.WithContext(ctx).Model(&types.Enrollment{}).
		Where("uid = ? AND course_id = ?", uid, courseID).
		Count(&n).Error; err != nil {
		tb.Fatalf("count enrollments: %v", err)
	}
	return n
}
