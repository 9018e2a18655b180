package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnosphere-backend/internal/domain"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	Create(dbc dbctx.Context, row *types.Enrollment) (*types.Enrollment, error)
	GetActive(dbc dbctx.Context, uid string, courseID uuid.UUID) (*types.Enrollment, error)
	GetByUID(dbc dbctx.Context, uid string) ([]*types.Enrollment, error)
	CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (bool, error)

	ListViewsByUID(dbc dbctx.Context, uid string) ([]*types.EnrollmentView, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) Create(dbc dbctx.Context, row *types.Enrollment) (*types.Enrollment, error) {
	if row == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// GetActive returns the record for (uid, courseID) or nil when none exists.
func (r *enrollmentRepo) GetActive(dbc dbctx.Context, uid string, courseID uuid.UUID) (*types.Enrollment, error) {
	var rows []*types.Enrollment
	if err := dbc.DB(r.db).
		Where("uid = ? AND course_id = ?", uid, courseID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *enrollmentRepo) GetByUID(dbc dbctx.Context, uid string) ([]*types.Enrollment, error) {
	var rows []*types.Enrollment
	if err := dbc.DB(r.db).
		Where("uid = ?", uid).
		Order("enrollment_date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *enrollmentRepo) CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Enrollment{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteByID hard-deletes one record and reports whether it existed.
func (r *enrollmentRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Enrollment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListViewsByUID joins the learner's records with course display fields, newest first.
func (r *enrollmentRepo) ListViewsByUID(dbc dbctx.Context, uid string) ([]*types.EnrollmentView, error) {
	var out []*types.EnrollmentView
	err := dbc.DB(r.db).
		Table("enrollment").
		Select(`enrollment.id AS id,
			enrollment.course_id AS course_id,
			enrollment.enrollment_date AS enrollment_date,
			course.title AS course_title,
			course.photo_url AS course_photo_url,
			course.category AS course_category`).
		Joins("JOIN course ON course.id = enrollment.course_id").
		Where("enrollment.uid = ?", uid).
		Order("enrollment.enrollment_date DESC").
		Order("enrollment.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*types.EnrollmentView{}
	}
	return out, nil
}
