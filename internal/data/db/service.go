package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Postgres PostgresConfig
	SQLite   SQLiteConfig
}

// Service is an open database handle.
type Service interface {
	DB() *gorm.DB
	Close() error
}

// Open connects to the configured driver.
func Open(cfg Config, logg *logger.Logger) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverPostgres, "postgresql":
		return NewPostgresService(cfg.Postgres, logg)
	case DriverSQLite, "sqlite3":
		return NewSQLiteService(cfg.SQLite, logg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func newGormLogger() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func closeGorm(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
