// Package seed loads development fixtures. It only inserts courses and learners; learner
// membership and seat counters start empty and are moved by the enrollment aggregate alone.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/learnosphere-backend/internal/domain"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type Fixture struct {
	Courses  []CourseFixture  `yaml:"courses"`
	Learners []LearnerFixture `yaml:"learners"`
}

type CourseFixture struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	PhotoURL  string `yaml:"photo_url"`
	Category  string `yaml:"category"`
	MentorUID string `yaml:"mentor_uid"`
	Seats     int    `yaml:"seats"`
}

type LearnerFixture struct {
	UID         string `yaml:"uid"`
	DisplayName string `yaml:"display_name"`
	PhotoURL    string `yaml:"photo_url"`
}

type Result struct {
	Courses  int64
	Learners int64
}

// Parse decodes and validates a fixture document. Unknown keys are rejected.
func Parse(raw []byte) (Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	seenUID := map[string]struct{}{}
	for i, c := range fx.Courses {
		if strings.TrimSpace(c.Title) == "" {
			return Fixture{}, fmt.Errorf("courses[%d]: title is required", i)
		}
		if c.Seats < 0 {
			return Fixture{}, fmt.Errorf("courses[%d]: seats must be >= 0", i)
		}
		if c.ID != "" {
			if _, err := uuid.Parse(c.ID); err != nil {
				return Fixture{}, fmt.Errorf("courses[%d]: id: %w", i, err)
			}
		}
	}
	for i, l := range fx.Learners {
		uid := strings.TrimSpace(l.UID)
		if uid == "" {
			return Fixture{}, fmt.Errorf("learners[%d]: uid is required", i)
		}
		if _, dup := seenUID[uid]; dup {
			return Fixture{}, fmt.Errorf("learners[%d]: duplicate uid %q", i, uid)
		}
		seenUID[uid] = struct{}{}
	}
	return fx, nil
}

// Apply inserts the fixture in one transaction. Rows that already exist are left untouched,
// so re-running a fixture is safe.
func Apply(db *gorm.DB, log *logger.Logger, fx Fixture) (Result, error) {
	var res Result
	err := db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		for _, c := range fx.Courses {
			id := uuid.New()
			if c.ID != "" {
				id = uuid.MustParse(c.ID)
			}
			row := &types.Course{
				ID:             id,
				Title:          strings.TrimSpace(c.Title),
				PhotoURL:       c.PhotoURL,
				Category:       c.Category,
				MentorUID:      c.MentorUID,
				RemainingSeats: c.Seats,
			}
			out := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
			if out.Error != nil {
				return fmt.Errorf("insert course %q: %w", c.Title, out.Error)
			}
			res.Courses += out.RowsAffected
		}
		for _, l := range fx.Learners {
			row := &types.Learner{
				ID:                uuid.New(),
				UID:               strings.TrimSpace(l.UID),
				DisplayName:       l.DisplayName,
				PhotoURL:          l.PhotoURL,
				EnrolledCourseIDs: datatypes.JSONSlice[uuid.UUID]{},
			}
			out := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "uid"}},
				DoNothing: true,
			}).Create(row)
			if out.Error != nil {
				return fmt.Errorf("insert learner %q: %w", l.UID, out.Error)
			}
			res.Learners += out.RowsAffected
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	if log != nil {
		log.Debug("fixture applied", "courses", res.Courses, "learners", res.Learners)
	}
	return res, nil
}
