package kv

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestFixedWindow_LimitBoundary 测试限额边界：前 N 次放行，第 N+1 次拒绝
func TestFixedWindow_LimitBoundary(t *testing.T) {
	store := NewMemoryStore()
	window := NewFixedWindow(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := window.Allow(ctx, "k", 5, time.Minute)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !allowed {
			t.Fatalf("第 %d 次调用应放行", i+1)
		}
	}

	allowed, err := window.Allow(ctx, "k", 5, time.Minute)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if allowed {
		t.Fatal("超过限额后应拒绝")
	}
}

// TestFixedWindow_DeniedCallsStillCount 被拒绝的调用同样计数
func TestFixedWindow_DeniedCallsStillCount(t *testing.T) {
	store := NewMemoryStore()
	window := NewFixedWindow(store)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		window.Allow(ctx, "k", 3, time.Minute)
	}

	n, err := store.Incr(ctx, "k")
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}
	if n != 11 {
		t.Fatalf("计数应为 11，实际 %d", n)
	}
}

// TestFixedWindow_WindowReset 窗口过期后计数归零，重新放行
func TestFixedWindow_WindowReset(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.SetClock(func() time.Time { return current })

	window := NewFixedWindow(store)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		window.Allow(ctx, "k", 3, time.Minute)
	}
	allowed, _ := window.Allow(ctx, "k", 3, time.Minute)
	if allowed {
		t.Fatal("窗口内超限应拒绝")
	}

	// 时钟拨过窗口
	current = current.Add(time.Minute + time.Second)

	allowed, err := window.Allow(ctx, "k", 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !allowed {
		t.Fatal("窗口过期后应重新放行")
	}
}

// TestFixedWindow_TTLSetOnce 只有窗口内第一次自增设置过期时间，后续不刷新
func TestFixedWindow_TTLSetOnce(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.SetClock(func() time.Time { return current })

	window := NewFixedWindow(store)
	ctx := context.Background()

	window.Allow(ctx, "k", 10, time.Minute)

	// 半分钟后再次调用，若 TTL 被刷新，则一分钟后键仍存在
	current = current.Add(30 * time.Second)
	window.Allow(ctx, "k", 10, time.Minute)

	current = current.Add(31 * time.Second)
	exists, err := store.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Fatal("窗口应以第一次自增为起点过期")
	}
}

type failingStore struct {
	Store
}

func (failingStore) Incr(ctx context.Context, key string) (int64, error) {
	return 0, errors.New("store down")
}

// TestFixedWindow_StoreErrorDenies 存储故障时拒绝放行
func TestFixedWindow_StoreErrorDenies(t *testing.T) {
	window := NewFixedWindow(failingStore{})

	allowed, err := window.Allow(context.Background(), "k", 10, time.Minute)
	if err == nil {
		t.Fatal("存储故障应返回错误")
	}
	if allowed {
		t.Fatal("存储故障时不应放行")
	}
}
