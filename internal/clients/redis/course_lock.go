package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

const (
	defaultLockTTL   = 15 * time.Second
	minRetryInterval = 5 * time.Millisecond
	maxRetryInterval = 100 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CourseLocker serializes enrollment writes for one course across every instance that
// shares the Redis server. Each hold is a SET NX lease with a random token.
type CourseLocker struct {
	rdb    goredis.UniversalClient
	log    *logger.Logger
	prefix string
	ttl    time.Duration
}

func NewCourseLocker(rdb goredis.UniversalClient, prefix string, ttl time.Duration, log *logger.Logger) *CourseLocker {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "learnosphere:course-lock:"
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CourseLocker{
		rdb:    rdb,
		log:    log.With("client", "RedisCourseLocker"),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (l *CourseLocker) key(courseID uuid.UUID) string {
	return l.prefix + courseID.String()
}

// Lock polls with capped backoff until the lease is taken or ctx is done.
// The lease outlives a crashed holder by at most ttl.
func (l *CourseLocker) Lock(ctx context.Context, courseID uuid.UUID) (func(), error) {
	if l == nil || l.rdb == nil {
		return nil, fmt.Errorf("redis course locker not initialized")
	}
	key := l.key(courseID)
	token := uuid.NewString()
	wait := minRetryInterval
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		if wait *= 2; wait > maxRetryInterval {
			wait = maxRetryInterval
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's ctx may already be cancelled; release on a fresh deadline.
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, l.rdb, []string{key}, token).Err(); err != nil {
				l.log.Warn("redis course lock release failed", "course_id", courseID, "error", err)
			}
		})
	}, nil
}
