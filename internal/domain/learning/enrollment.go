package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment is the ledger entry linking one learner to one course.
// Rows are inserted on enroll and hard-deleted on unenroll; the (uid, course_id)
// unique index guarantees at most one active record per pair.
type Enrollment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UID            string    `gorm:"column:uid;not null;uniqueIndex:idx_enrollment_uid_course,priority:1" json:"uid"`
	CourseID       uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex:idx_enrollment_uid_course,priority:2;index" json:"course_id"`
	EnrollmentDate time.Time `gorm:"column:enrollment_date;not null" json:"enrollment_date"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now().UTC()
	}
	return nil
}

// EnrollmentView is an enrollment joined with the course fields shown to the learner.
type EnrollmentView struct {
	ID             uuid.UUID `json:"_id"`
	CourseID       uuid.UUID `json:"courseId"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	CourseTitle    string    `json:"courseTitle"`
	CoursePhotoURL string    `json:"coursePhotoURL"`
	CourseCategory string    `json:"courseCategory"`
}
