package aggregates

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryCourseLockerSerializesSameCourse(t *testing.T) {
	locker := NewMemoryCourseLocker()
	courseID := uuid.New()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), courseID)
			if err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("holders at once: want=1 got=%d", maxInside)
	}
	if n := locker.(*memoryCourseLocker).size(); n != 0 {
		t.Fatalf("lock entries leaked: %d", n)
	}
}

func TestMemoryCourseLockerDistinctCoursesDoNotContend(t *testing.T) {
	locker := NewMemoryCourseLocker()
	unlockA, err := locker.Lock(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Lock A: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	unlockB, err := locker.Lock(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Lock B should not wait on A: %v", err)
	}
	unlockB()
}

func TestMemoryCourseLockerHonorsContext(t *testing.T) {
	locker := NewMemoryCourseLocker()
	courseID := uuid.New()
	unlock, err := locker.Lock(context.Background(), courseID)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx, courseID); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got=%v", err)
	}

	unlock()
	unlock()
	if n := locker.(*memoryCourseLocker).size(); n != 0 {
		t.Fatalf("lock entries leaked: %d", n)
	}

	again, err := locker.Lock(context.Background(), courseID)
	if err != nil {
		t.Fatalf("relock after idempotent unlock: %v", err)
	}
	again()
}

func TestNoopCourseLocker(t *testing.T) {
	locker := NewNoopCourseLocker()
	unlock, err := locker.Lock(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := locker.Lock(ctx, uuid.New()); !errors.Is(err, context.Canceled) {
		t.Fatalf("want canceled, got=%v", err)
	}
}
