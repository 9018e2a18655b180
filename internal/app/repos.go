package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/learnosphere-backend/internal/data/repos"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type Repos struct {
	Learner    repos.LearnerRepo
	Course     repos.CourseRepo
	Enrollment repos.EnrollmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Learner:    repos.NewLearnerRepo(db, log),
		Course:     repos.NewCourseRepo(db, log),
		Enrollment: repos.NewEnrollmentRepo(db, log),
	}
}
