package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Learner is a user that can hold course enrollments.
// TotalEnrolled always equals len(EnrolledCourseIDs); both are written only by the
// enrollment aggregate.
type Learner struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UID         string    `gorm:"column:uid;not null;uniqueIndex" json:"uid"`
	DisplayName string    `gorm:"column:display_name" json:"displayName"`
	PhotoURL    string    `gorm:"column:photo_url" json:"photoURL"`

	EnrolledCourseIDs datatypes.JSONSlice[uuid.UUID] `gorm:"column:enrolled_course_ids" json:"enrolledCourseIds"`
	TotalEnrolled     int                            `gorm:"column:total_enrolled;not null;default:0" json:"totalEnrolled"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Learner) TableName() string { return "learner" }

func (l *Learner) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.EnrolledCourseIDs == nil {
		l.EnrolledCourseIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	l.TotalEnrolled = len(l.EnrolledCourseIDs)
	return nil
}

// HasCourse reports whether courseID is in the learner's membership set.
func (l *Learner) HasCourse(courseID uuid.UUID) bool {
	if l == nil {
		return false
	}
	for _, id := range l.EnrolledCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}
