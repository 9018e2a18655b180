package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is a catalog entry with finite seat capacity.
//
// RemainingSeats and TotalEnrollment are owned by the enrollment aggregate; catalog
// writes must never touch them.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	PhotoURL  string    `gorm:"column:photo_url" json:"photo_url"`
	Category  string    `gorm:"column:category;index" json:"category"`
	MentorUID string    `gorm:"column:mentor_uid;index" json:"mentor_uid"`

	RemainingSeats  int `gorm:"column:remaining_seats;not null;default:0;check:chk_course_remaining_seats,remaining_seats >= 0" json:"remaining_seats"`
	TotalEnrollment int `gorm:"column:total_enrollment;not null;default:0;check:chk_course_total_enrollment,total_enrollment >= 0" json:"total_enrollment"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
