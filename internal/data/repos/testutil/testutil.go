package testutil

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/learnosphere-backend/internal/data/db"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

var (
	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database. With TEST_POSTGRES_DSN set every test shares one
// Postgres database and must seed rows with fresh ids; otherwise each test gets its own
// in-memory SQLite database that is closed on cleanup.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	if dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")); dsn != "" {
		return postgresDB(tb, dsn)
	}
	return SQLiteDB(tb)
}

// SQLiteDB always returns a private in-memory SQLite database.
func SQLiteDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	svc, err := db.NewSQLiteServiceDSN(dsn, Logger(tb))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	gdb := svc.DB().Session(&gorm.Session{Logger: gormLogger.Default.LogMode(gormLogger.Silent)})
	if err := db.AutoMigrateAll(gdb); err != nil {
		_ = svc.Close()
		tb.Fatalf("migrate sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	return gdb
}

func postgresDB(tb testing.TB, dsn string) *gorm.DB {
	tb.Helper()
	pgOnce.Do(func() {
		svc, err := db.NewPostgresServiceDSN(dsn, db.PostgresConfig{}, Logger(tb))
		if err != nil {
			pgErr = err
			return
		}
		pgDB = svc.DB().Session(&gorm.Session{Logger: gormLogger.Default.LogMode(gormLogger.Silent)})
		pgErr = db.AutoMigrateAll(pgDB)
	})
	if pgErr != nil {
		tb.Fatalf("failed to init test db: %v", pgErr)
	}
	return pgDB
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
