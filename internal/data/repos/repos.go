package repos

import (
	"github.com/yungbote/learnosphere-backend/internal/data/repos/learning"
	"github.com/yungbote/learnosphere-backend/internal/data/repos/user"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type LearnerRepo = user.LearnerRepo

type CourseRepo = learning.CourseRepo
type EnrollmentRepo = learning.EnrollmentRepo

func NewLearnerRepo(db *gorm.DB, baseLog *logger.Logger) LearnerRepo {
	return user.NewLearnerRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return learning.NewEnrollmentRepo(db, baseLog)
}
