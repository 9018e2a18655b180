package domain

import (
	"github.com/yungbote/learnosphere-backend/internal/domain/learning"
	"github.com/yungbote/learnosphere-backend/internal/domain/user"
)

type Learner = user.Learner

type Course = learning.Course
type Enrollment = learning.Enrollment
type EnrollmentView = learning.EnrollmentView

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&Learner{},
		&Course{},
		&Enrollment{},
	}
}
