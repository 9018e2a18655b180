package app

import (
	"testing"
	"time"

	"github.com/yungbote/learnosphere-backend/internal/platform/config"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if err := config.ParseEnvWith(&cfg, map[string]string{"JWT_SECRET_KEY": "s"}); err != nil {
		t.Fatalf("ParseEnvWith: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Addr() != ":5000" {
		t.Fatalf("addr: got=%q", cfg.Addr())
	}
	if cfg.EnrollmentTxTimeout != 5*time.Second {
		t.Fatalf("tx timeout: got=%s", cfg.EnrollmentTxTimeout)
	}
	if cfg.lockBackend() != LockBackendMemory {
		t.Fatalf("lock backend: got=%q", cfg.lockBackend())
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.Postgres.Port != "5432" {
		t.Fatalf("db defaults: %+v", cfg.DB)
	}
	if cfg.Redis.LockPrefix == "" {
		t.Fatalf("redis lock prefix default missing")
	}
}

func TestConfigParsesOverrides(t *testing.T) {
	var cfg Config
	err := config.ParseEnvWith(&cfg, map[string]string{
		"JWT_SECRET_KEY":          "s",
		"PORT":                    "127.0.0.1:8080",
		"ENROLLMENT_TX_TIMEOUT":   "750ms",
		"ENROLLMENT_TX_ISOLATION": "serializable",
		"COURSE_LOCK_BACKEND":     "redis",
		"REDIS_ADDR":              "localhost:6379",
		"CORS_ORIGINS":            "http://a.test,http://b.test",
		"DB_DRIVER":               "sqlite",
		"SQLITE_PATH":             "/tmp/ls.db",
		"METRICS_ENABLED":         "true",
	})
	if err != nil {
		t.Fatalf("ParseEnvWith: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8080" || cfg.EnrollmentTxTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.DB.SQLite.Path != "/tmp/ls.db" || !cfg.Observability.MetricsEnabled {
		t.Fatalf("nested config not parsed: %+v", cfg)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	base := Config{JWTSecretKey: "s", EnrollmentTxTimeout: time.Second, EnrollmentTxIsolation: "default"}
	cases := map[string]func(c *Config){
		"missing secret":  func(c *Config) { c.JWTSecretKey = "" },
		"zero timeout":    func(c *Config) { c.EnrollmentTxTimeout = 0 },
		"bad isolation":   func(c *Config) { c.EnrollmentTxIsolation = "snapshot" },
		"redis no addr":   func(c *Config) { c.CourseLockBackend = "redis" },
		"unknown backend": func(c *Config) { c.CourseLockBackend = "etcd" },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
