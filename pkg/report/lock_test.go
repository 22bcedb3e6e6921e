package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/ports"
)

type nopStore struct{}

func (nopStore) Save(ctx context.Context, id string, r *domain.Report) error { return nil }
func (nopStore) Load(ctx context.Context, id string) (*domain.Report, error) {
	return &domain.Report{}, nil
}
func (nopStore) Delete(ctx context.Context, id string) error { return nil }
func (nopStore) List(ctx context.Context) ([]string, error)  { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		id := fmt.Sprintf("report-%d", i)
		_ = mgr.Publish(ctx, domain.Report{ID: id})
		_ = mgr.Delete(ctx, id)
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}

type recordingLocker struct {
	keys     []string
	released int
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.keys = append(l.keys, key)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	mgr := NewManager(nopStore{}, WithLocker(locker), WithLockTTL(time.Second))

	if err := mgr.Publish(context.Background(), domain.Report{ID: "daily"}); err != nil {
		t.Fatal(err)
	}
	if len(locker.keys) != 1 || locker.keys[0] != "daily" || locker.released != 1 {
		t.Errorf("expected one lock/unlock on daily, got keys=%v released=%d", locker.keys, locker.released)
	}
}
