package user

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/learnosphere-backend/internal/domain"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

// LearnerRepo persists learners. The membership set and its count are written together
// through SaveMembership only.
type LearnerRepo interface {
	Create(dbc dbctx.Context, learners []*types.Learner) ([]*types.Learner, error)
	GetByUIDs(dbc dbctx.Context, uids []string) ([]*types.Learner, error)
	GetByUIDForUpdate(dbc dbctx.Context, uid string) (*types.Learner, error)
	SaveMembership(dbc dbctx.Context, learnerID uuid.UUID, courseIDs []uuid.UUID) error
}

type learnerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearnerRepo(db *gorm.DB, baseLog *logger.Logger) LearnerRepo {
	repoLog := baseLog.With("repo", "LearnerRepo")
	return &learnerRepo{db: db, log: repoLog}
}

func (lr *learnerRepo) Create(dbc dbctx.Context, learners []*types.Learner) ([]*types.Learner, error) {
	if len(learners) == 0 {
		return []*types.Learner{}, nil
	}
	if err := dbc.DB(lr.db).Create(&learners).Error; err != nil {
		return nil, err
	}
	return learners, nil
}

func (lr *learnerRepo) GetByUIDs(dbc dbctx.Context, uids []string) ([]*types.Learner, error) {
	var results []*types.Learner
	if len(uids) == 0 {
		return results, nil
	}
	if err := dbc.DB(lr.db).
		Where("uid IN ?", uids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUIDForUpdate reads a learner under a row lock. On SQLite the write lock taken at
// BEGIN already serializes writers. A missing learner yields (nil, nil).
func (lr *learnerRepo) GetByUIDForUpdate(dbc dbctx.Context, uid string) (*types.Learner, error) {
	t := dbc.DB(lr.db)
	if t.Dialector.Name() == "postgres" {
		t = t.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []*types.Learner
	if err := t.Where("uid = ?", uid).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// SaveMembership overwrites the membership set; total_enrolled is always len(courseIDs).
func (lr *learnerRepo) SaveMembership(dbc dbctx.Context, learnerID uuid.UUID, courseIDs []uuid.UUID) error {
	set := datatypes.JSONSlice[uuid.UUID](courseIDs)
	if set == nil {
		set = datatypes.JSONSlice[uuid.UUID]{}
	}
	res := dbc.DB(lr.db).
		Model(&types.Learner{}).
		Where("id = ?", learnerID).
		Updates(map[string]interface{}{
			"enrolled_course_ids": set,
			"total_enrolled":      len(set),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
