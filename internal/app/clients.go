package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnosphere-backend/internal/clients/redis"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type Clients struct {
	Redis *goredis.Client
}

// wireClients connects to Redis when it is configured or required by the lock backend.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			if cfg.lockBackend() == LockBackendRedis {
				return Clients{}, fmt.Errorf("init redis: %w", err)
			}
			log.Warn("Redis unavailable; continuing without it", "error", err)
		} else {
			out.Redis = rdb
		}
	}
	return out, nil
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
