package aggregates

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/learnosphere-backend/internal/data/repos"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
)

// MembershipIndex owns a learner's set of enrolled courses and its count.
type MembershipIndex struct {
	Learners repos.LearnerRepo
}

// AddMembership adds courseID to the learner's set. It reports whether the set changed.
func (m MembershipIndex) AddMembership(dbc dbctx.Context, uid string, courseID uuid.UUID) (bool, error) {
	learner, err := m.Learners.GetByUIDForUpdate(dbc, uid)
	if err != nil {
		return false, fmt.Errorf("add membership: %w", err)
	}
	if learner == nil {
		return false, LearnerNotFoundError(fmt.Sprintf("learner %s not found", uid))
	}
	if learner.HasCourse(courseID) {
		return false, nil
	}
	set := make([]uuid.UUID, 0, len(learner.EnrolledCourseIDs)+1)
	set = append(set, learner.EnrolledCourseIDs...)
	set = append(set, courseID)
	if err := m.Learners.SaveMembership(dbc, learner.ID, set); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, LearnerNotFoundError(fmt.Sprintf("learner %s not found", uid))
		}
		return false, fmt.Errorf("add membership: %w", err)
	}
	return true, nil
}

// RemoveMembership removes courseID from the learner's set. It reports whether the set changed.
func (m MembershipIndex) RemoveMembership(dbc dbctx.Context, uid string, courseID uuid.UUID) (bool, error) {
	learner, err := m.Learners.GetByUIDForUpdate(dbc, uid)
	if err != nil {
		return false, fmt.Errorf("remove membership: %w", err)
	}
	if learner == nil {
		return false, LearnerNotFoundError(fmt.Sprintf("learner %s not found", uid))
	}
	if !learner.HasCourse(courseID) {
		return false, nil
	}
	set := make([]uuid.UUID, 0, len(learner.EnrolledCourseIDs))
	for _, id := range learner.EnrolledCourseIDs {
		if id != courseID {
			set = append(set, id)
		}
	}
	if err := m.Learners.SaveMembership(dbc, learner.ID, set); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, LearnerNotFoundError(fmt.Sprintf("learner %s not found", uid))
		}
		return false, fmt.Errorf("remove membership: %w", err)
	}
	return true, nil
}
