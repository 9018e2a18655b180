package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/learnosphere-backend/internal/clients/redis"
	"github.com/yungbote/learnosphere-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/observability"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
	"github.com/yungbote/learnosphere-backend/internal/services"
)

type Services struct {
	EnrollmentAggregate domainagg.EnrollmentAggregate
	Identity            services.IdentityVerifier
	Enrollment          services.EnrollmentService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	isolation, err := aggregates.ParseIsolation(cfg.EnrollmentTxIsolation)
	if err != nil {
		return Services{}, err
	}
	locker, err := wireCourseLocker(log, cfg, clients)
	if err != nil {
		return Services{}, err
	}

	agg := aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:        db,
			Log:       log,
			Runner:    aggregates.NewTxRunner(aggregates.NewGormUnitOfWork(db, isolation)),
			Hooks:     aggregates.NewObservabilityHooks(metrics),
			Locker:    locker,
			TxTimeout: cfg.EnrollmentTxTimeout,
		},
		Courses:     reposet.Course,
		Learners:    reposet.Learner,
		Enrollments: reposet.Enrollment,
	})

	contract := agg.Contract()
	log.Info("Aggregate wired", "aggregate", contract.Name, "writes", contract.Writes, "lock_scope", string(contract.Lock))

	identity, err := services.NewJWTIdentityVerifier(cfg.JWTSecretKey)
	if err != nil {
		return Services{}, fmt.Errorf("init identity verifier: %w", err)
	}

	return Services{
		EnrollmentAggregate: agg,
		Identity:            identity,
		Enrollment:          services.NewEnrollmentService(log, agg, identity, reposet.Learner, reposet.Enrollment),
	}, nil
}

func wireCourseLocker(log *logger.Logger, cfg Config, clients Clients) (aggregates.CourseLocker, error) {
	switch cfg.lockBackend() {
	case LockBackendRedis:
		if clients.Redis == nil {
			return nil, fmt.Errorf("COURSE_LOCK_BACKEND=redis but no redis client")
		}
		log.Info("Course lock backend: redis", "prefix", cfg.Redis.LockPrefix)
		return redis.NewCourseLocker(clients.Redis, cfg.Redis.LockPrefix, cfg.CourseLockTTL, log), nil
	case LockBackendNone:
		log.Warn("Course lock disabled; relying on conditional seat updates only")
		return aggregates.NewNoopCourseLocker(), nil
	default:
		return aggregates.NewMemoryCourseLocker(), nil
	}
}
