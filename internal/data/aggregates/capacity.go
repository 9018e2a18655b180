package aggregates

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/learnosphere-backend/internal/data/repos"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
)

// CapacityLedger owns the seat counters of a course.
type CapacityLedger struct {
	Courses repos.CourseRepo
}

// TryReserveSeat takes one seat in a single conditional update. When no row matches it
// tells a missing course apart from a full one.
func (c CapacityLedger) TryReserveSeat(dbc dbctx.Context, courseID uuid.UUID) error {
	ok, err := c.Courses.TryReserveSeat(dbc, courseID)
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if ok {
		return nil
	}
	exists, err := c.Courses.Exists(dbc, courseID)
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if !exists {
		return CourseNotFoundError(fmt.Sprintf("course %s not found", courseID))
	}
	return CapacityExhaustedError(fmt.Sprintf("course %s has no remaining seats", courseID))
}

// ReleaseSeat returns one seat to the course.
func (c CapacityLedger) ReleaseSeat(dbc dbctx.Context, courseID uuid.UUID) error {
	ok, err := c.Courses.ReleaseSeat(dbc, courseID)
	if err != nil {
		return fmt.Errorf("release seat: %w", err)
	}
	if !ok {
		return CourseNotFoundError(fmt.Sprintf("course %s not found", courseID))
	}
	return nil
}
