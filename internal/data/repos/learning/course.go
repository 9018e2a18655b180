package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/learnosphere-backend/internal/domain"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

// CourseRepo persists catalog rows. Seat counters are only changed through TryReserveSeat
// and ReleaseSeat, which are conditional single-statement updates.
type CourseRepo interface {
	Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error)
	GetByIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Course, error)
	GetByIDForUpdate(dbc dbctx.Context, courseID uuid.UUID) (*types.Course, error)
	Exists(dbc dbctx.Context, courseID uuid.UUID) (bool, error)

	TryReserveSeat(dbc dbctx.Context, courseID uuid.UUID) (bool, error)
	ReleaseSeat(dbc dbctx.Context, courseID uuid.UUID) (bool, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error) {
	if len(courses) == 0 {
		return []*types.Course{}, nil
	}
	if err := dbc.DB(r.db).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Course, error) {
	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByIDForUpdate reads one course under a row lock when the dialect supports it.
// A missing course yields (nil, nil).
func (r *courseRepo) GetByIDForUpdate(dbc dbctx.Context, courseID uuid.UUID) (*types.Course, error) {
	t := dbc.DB(r.db)
	if t.Dialector.Name() == "postgres" {
		t = t.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []*types.Course
	if err := t.Where("id = ?", courseID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *courseRepo) Exists(dbc dbctx.Context, courseID uuid.UUID) (bool, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Course{}).Where("id = ?", courseID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// TryReserveSeat atomically takes one seat. It reports false when no row matched, which
// means the course is absent or has no remaining seats.
func (r *courseRepo) TryReserveSeat(dbc dbctx.Context, courseID uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.Course{}).
		Where("id = ? AND remaining_seats > 0", courseID).
		Updates(map[string]interface{}{
			"remaining_seats":  gorm.Expr("remaining_seats - 1"),
			"total_enrollment": gorm.Expr("total_enrollment + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReleaseSeat returns one seat. total_enrollment never drops below zero.
// It reports false when the course is absent.
func (r *courseRepo) ReleaseSeat(dbc dbctx.Context, courseID uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"remaining_seats":  gorm.Expr("remaining_seats + 1"),
			"total_enrollment": gorm.Expr("CASE WHEN total_enrollment > 0 THEN total_enrollment - 1 ELSE 0 END"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
