package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/learnosphere-backend/internal/clients/redis"
	"github.com/yungbote/learnosphere-backend/internal/data/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/data/db"
	"github.com/yungbote/learnosphere-backend/internal/observability"
	"github.com/yungbote/learnosphere-backend/internal/platform/config"
)

const (
	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"
	LockBackendNone   = "none"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"5000"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`

	JWTSecretKey string `env:"JWT_SECRET_KEY"`

	EnrollmentTxTimeout   time.Duration `env:"ENROLLMENT_TX_TIMEOUT" envDefault:"5s"`
	EnrollmentTxIsolation string        `env:"ENROLLMENT_TX_ISOLATION" envDefault:"default"`
	CourseLockBackend     string        `env:"COURSE_LOCK_BACKEND" envDefault:"memory"`
	CourseLockTTL         time.Duration `env:"COURSE_LOCK_TTL" envDefault:"15s"`

	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	DB            db.Config
	Redis         redis.Config
	Observability observability.Config
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.EnrollmentTxTimeout <= 0 {
		return fmt.Errorf("ENROLLMENT_TX_TIMEOUT must be positive")
	}
	if _, err := aggregates.ParseIsolation(c.EnrollmentTxIsolation); err != nil {
		return fmt.Errorf("ENROLLMENT_TX_ISOLATION: %w", err)
	}
	switch c.lockBackend() {
	case LockBackendMemory, LockBackendNone:
	case LockBackendRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("COURSE_LOCK_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown COURSE_LOCK_BACKEND %q", c.CourseLockBackend)
	}
	return nil
}

func (c Config) lockBackend() string {
	b := strings.ToLower(strings.TrimSpace(c.CourseLockBackend))
	if b == "" {
		return LockBackendMemory
	}
	return b
}

func (c Config) Addr() string {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
