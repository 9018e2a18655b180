package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"learnosphere.db"`
}

// DSN returns a go-sqlite3 connection string. Writers take the database lock at BEGIN
// so that concurrent units of work queue instead of failing on lock upgrade.
func (c SQLiteConfig) DSN() string {
	path := strings.TrimSpace(c.Path)
	if path == "" {
		path = "learnosphere.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	params := []string{"_busy_timeout=5000", "_foreign_keys=1"}
	if !strings.Contains(path, "mode=memory") && path != ":memory:" {
		params = append(params, "_txlock=immediate", "_journal_mode=WAL")
	}
	return path + sep + strings.Join(params, "&")
}

type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(cfg SQLiteConfig, logg *logger.Logger) (*SQLiteService, error) {
	return NewSQLiteServiceDSN(cfg.DSN(), logg)
}

func NewSQLiteServiceDSN(dsn string, logg *logger.Logger) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	// SQLite allows a single writer; one connection keeps in-memory databases alive and
	// turns concurrent units of work into a queue.
	sqlDB.SetMaxOpenConns(1)

	return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) Close() error { return closeGorm(s.db) }
