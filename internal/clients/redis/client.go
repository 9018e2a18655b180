package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type Config struct {
	Addr       string `env:"REDIS_ADDR"`
	Password   string `env:"REDIS_PASSWORD"`
	DB         int    `env:"REDIS_DB" envDefault:"0"`
	LockPrefix string `env:"REDIS_LOCK_PREFIX" envDefault:"learnosphere:course-lock:"`
}

// NewClient dials Redis and pings it once before returning.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*goredis.Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("Connected to redis", "addr", addr)
	return rdb, nil
}
