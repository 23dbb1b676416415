package kv

import (
	"context"
	"time"
)

// FixedWindow 固定窗口计数限流器。同一个 key 在窗口内每次调用都会计数，
// 被拒绝的请求同样消耗计数。窗口边界处最多允许 2 倍突发
type FixedWindow struct {
	store Store
}

// NewFixedWindow 创建固定窗口限流器
func NewFixedWindow(store Store) *FixedWindow {
	return &FixedWindow{store: store}
}

// Allow 自增计数并判断是否放行。窗口内第一次自增时设置过期时间，
// 后续自增不再刷新，保证窗口固定。存储出错时返回错误，调用方应视为拒绝
func (f *FixedWindow) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	n, err := f.store.Incr(ctx, key)
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := f.store.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}
	return n <= limit, nil
}
