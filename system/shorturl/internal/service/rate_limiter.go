package service

import (
	"context"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/kv"
)

const (
	anonymousCreationLimit  = 7
	anonymousCreationWindow = 24 * time.Hour
	userCreationWindow      = 24 * time.Hour
	redirectLimit           = 50
	redirectWindow          = time.Minute
)

// RateLimiter 业务限流入口。固定窗口计数，被拒绝的请求同样计数，
// 存储出错时一律拒绝
type RateLimiter struct {
	window *kv.FixedWindow
	log    *logger.Log
	err    *errorc.ErrorBuilder
}

// NewRateLimiter 创建业务限流器
func NewRateLimiter(store kv.Store, log *logger.Log) *RateLimiter {
	return &RateLimiter{
		window: kv.NewFixedWindow(store),
		log:    log.WithEntryName("RateLimiter"),
		err:    errorc.NewErrorBuilder("RateLimiter"),
	}
}

// AllowAnonymousCreation 匿名创建限流：每 IP 每天 7 条
func (r *RateLimiter) AllowAnonymousCreation(ctx context.Context, ip string) error {
	return r.check(ctx, AnonymousCreationKey(ip), anonymousCreationLimit, anonymousCreationWindow,
		"今日创建短链接次数已达上限")
}

// AllowUserCreation 用户创建限流：每天 quota 条，quota 为负表示不限量，不计数直接放行
func (r *RateLimiter) AllowUserCreation(ctx context.Context, userID int64, quota int64) error {
	if quota < 0 {
		return nil
	}
	return r.check(ctx, UserCreationKey(userID), quota, userCreationWindow,
		"今日创建短链接次数已达套餐上限")
}

// AllowRedirect 跳转限流：每 IP 每分钟 50 次
func (r *RateLimiter) AllowRedirect(ctx context.Context, ip string) error {
	return r.check(ctx, RedirectKey(ip), redirectLimit, redirectWindow,
		"访问过于频繁，请稍后再试")
}

func (r *RateLimiter) check(ctx context.Context, key string, limit int64, window time.Duration, msg string) error {
	allowed, err := r.window.Allow(ctx, key, limit, window)
	if err != nil {
		r.log.WithErr(err).WithField("key", key).Warn("限流计数失败，按拒绝处理")
		return r.err.New(msg, err).TooMany()
	}
	if !allowed {
		return r.err.New(msg, nil).TooMany()
	}
	return nil
}
