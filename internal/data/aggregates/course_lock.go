package aggregates

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// CourseLocker provides mutual exclusion per course id. Distinct courses never contend.
// Lock blocks until the lock is held or ctx is done; the returned unlock func is idempotent.
type CourseLocker interface {
	Lock(ctx context.Context, courseID uuid.UUID) (unlock func(), err error)
}

type memoryCourseLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*courseLockEntry
}

type courseLockEntry struct {
	sem  chan struct{}
	refs int
}

// NewMemoryCourseLocker returns an in-process keyed mutex. It only serializes callers in
// the same process; use the Redis locker when several instances share a database.
func NewMemoryCourseLocker() CourseLocker {
	return &memoryCourseLocker{locks: map[uuid.UUID]*courseLockEntry{}}
}

func (l *memoryCourseLocker) Lock(ctx context.Context, courseID uuid.UUID) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[courseID]
	if !ok {
		e = &courseLockEntry{sem: make(chan struct{}, 1)}
		l.locks[courseID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(courseID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(courseID, e)
		})
	}, nil
}

func (l *memoryCourseLocker) release(courseID uuid.UUID, e *courseLockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, courseID)
	}
}

// size reports how many course ids currently have holders or waiters.
func (l *memoryCourseLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

type noopCourseLocker struct{}

// NewNoopCourseLocker disables course locking; correctness then rests on the conditional
// seat update alone.
func NewNoopCourseLocker() CourseLocker { return noopCourseLocker{} }

func (noopCourseLocker) Lock(ctx context.Context, _ uuid.UUID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return func() {}, nil
}
