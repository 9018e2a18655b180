package db

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/learnosphere-backend/internal/domain"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

func TestPostgresDSNEscapesCredentials(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss word", Name: "learn", SSLMode: "disable"}
	dsn := cfg.DSN()
	if !strings.HasPrefix(dsn, "postgres://app:") || !strings.Contains(dsn, "@db:5432/learn?sslmode=disable") {
		t.Fatalf("unexpected dsn: %s", dsn)
	}
	if strings.Contains(dsn, "p@ss word") {
		t.Fatalf("password not escaped: %s", dsn)
	}
}

func TestSQLiteDSN(t *testing.T) {
	file := SQLiteConfig{Path: "data.db"}.DSN()
	if !strings.Contains(file, "_txlock=immediate") {
		t.Fatalf("file dsn missing txlock: %s", file)
	}
	mem := SQLiteConfig{Path: "file:x?mode=memory&cache=shared"}.DSN()
	if strings.Contains(mem, "_txlock") || !strings.Contains(mem, "&_busy_timeout=5000") {
		t.Fatalf("unexpected memory dsn: %s", mem)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}, logger.Nop()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAutoMigrateEnforcesSeatCheck(t *testing.T) {
	svc, err := NewSQLiteServiceDSN("file:"+uuid.NewString()+"?mode=memory&cache=shared&_busy_timeout=5000", logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer svc.Close()
	if err := AutoMigrateAll(svc.DB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	course := &types.Course{Title: "Go", RemainingSeats: 0}
	if err := svc.DB().Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	err = svc.DB().Model(&types.Course{}).Where("id = ?", course.ID).
		Update("remaining_seats", -1).Error
	if err == nil {
		t.Fatalf("expected check constraint violation")
	}
}
