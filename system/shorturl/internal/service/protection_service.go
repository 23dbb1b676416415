package service

import (
	"context"
	"strconv"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/kv"
	"astrolink/system/shorturl/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordAttemptLimit  = 5
	passwordLockoutWindow = 15 * time.Minute
)

// ProtectionService 短链接密码保护。错误尝试按短码计数，
// 15 分钟内累计 5 次后锁定，锁定期间即使密码正确也拒绝
type ProtectionService struct {
	store kv.Store
	log   *logger.Log
	err   *errorc.ErrorBuilder
}

// NewProtectionService 创建密码保护服务
func NewProtectionService(store kv.Store, log *logger.Log) *ProtectionService {
	return &ProtectionService{
		store: store,
		log:   log.WithEntryName("ProtectionService"),
		err:   errorc.NewErrorBuilder("ProtectionService"),
	}
}

// CheckAccess 校验访问许可。
// 未设密码直接放行；设了密码但未提供时返回需要密码（401，带独立错误码，
// 前端据此弹出密码框）；命中锁定返回 403；密码错误计一次并返回 401；
// 密码正确不动计数
func (s *ProtectionService) CheckAccess(ctx context.Context, link *model.Link, password string) error {
	if !link.HasPassword() {
		return nil
	}

	if password == "" {
		return s.err.New("该短链接需要访问密码", nil).WithCode(errorc.ErrorCodePasswordRequired)
	}

	locked, err := s.isLockedOut(ctx, link.Slug)
	if err != nil {
		s.log.WithErr(err).WithField("slug", link.Slug).Warn("读取锁定计数失败，按锁定处理")
		return s.err.New("密码尝试过于频繁，请稍后再试", err).WithCode(errorc.ErrorCodeLockedOut)
	}
	if locked {
		return s.err.New("密码尝试过于频繁，请稍后再试", nil).WithCode(errorc.ErrorCodeLockedOut)
	}

	if bcrypt.CompareHashAndPassword([]byte(link.PasswordHash), []byte(password)) != nil {
		s.recordFailedAttempt(ctx, link.Slug)
		return s.err.New("访问密码错误", nil).WithCode(errorc.ErrorCodeIncorrectPassword)
	}

	return nil
}

func (s *ProtectionService) isLockedOut(ctx context.Context, slug string) (bool, error) {
	val, found, err := s.store.Get(ctx, PasswordAttemptKey(slug))
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	attempts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, err
	}
	return attempts >= passwordAttemptLimit, nil
}

func (s *ProtectionService) recordFailedAttempt(ctx context.Context, slug string) {
	key := PasswordAttemptKey(slug)
	n, err := s.store.Incr(ctx, key)
	if err != nil {
		s.log.WithErr(err).WithField("slug", slug).Warn("记录密码错误次数失败")
		return
	}
	if n == 1 {
		if err := s.store.Expire(ctx, key, passwordLockoutWindow); err != nil {
			s.log.WithErr(err).WithField("slug", slug).Warn("设置锁定窗口失败")
		}
	}
}
