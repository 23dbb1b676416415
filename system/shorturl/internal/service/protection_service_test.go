package service

import (
	"context"
	"testing"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/kv"
	"astrolink/system/shorturl/internal/model"

	"golang.org/x/crypto/bcrypt"
)

func newProtectedLink(t *testing.T, slug, password string) *model.Link {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error = %v", err)
	}
	link := &model.Link{
		Slug:         slug,
		TargetURL:    "https://example.com",
		PasswordHash: string(hash),
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	return link
}

// TestCheckAccess_NoPassword 未设密码的链接直接放行
func TestCheckAccess_NoPassword(t *testing.T) {
	svc := NewProtectionService(kv.NewMemoryStore(), logger.GetLogger())
	link := &model.Link{Slug: "abc123", TargetURL: "https://example.com"}

	if err := svc.CheckAccess(context.Background(), link, ""); err != nil {
		t.Fatalf("CheckAccess() error = %v", err)
	}
	if err := svc.CheckAccess(context.Background(), link, "whatever"); err != nil {
		t.Fatalf("多余的密码不应影响放行: %v", err)
	}
}

// TestCheckAccess_PasswordRequired 设了密码但未提供时返回需要密码的独立错误码
func TestCheckAccess_PasswordRequired(t *testing.T) {
	svc := NewProtectionService(kv.NewMemoryStore(), logger.GetLogger())
	link := newProtectedLink(t, "abc123", "secret")

	err := svc.CheckAccess(context.Background(), link, "")
	if !errorc.IsCode(err, errorc.ErrorCodePasswordRequired) {
		t.Fatalf("应返回需要密码错误，实际 %v", err)
	}
}

// TestCheckAccess_CorrectPassword 密码正确放行且不影响计数
func TestCheckAccess_CorrectPassword(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewProtectionService(store, logger.GetLogger())
	link := newProtectedLink(t, "abc123", "secret")
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := svc.CheckAccess(ctx, link, "secret"); err != nil {
			t.Fatalf("正确密码应放行: %v", err)
		}
	}

	exists, err := store.Exists(ctx, PasswordAttemptKey(link.Slug))
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Fatal("正确密码不应写入错误计数")
	}
}

// TestCheckAccess_IncorrectPassword 密码错误返回 401 并累计计数
func TestCheckAccess_IncorrectPassword(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewProtectionService(store, logger.GetLogger())
	link := newProtectedLink(t, "abc123", "secret")
	ctx := context.Background()

	err := svc.CheckAccess(ctx, link, "wrong")
	if !errorc.IsCode(err, errorc.ErrorCodeIncorrectPassword) {
		t.Fatalf("应返回密码错误，实际 %v", err)
	}

	val, found, err := store.Get(ctx, PasswordAttemptKey(link.Slug))
	if err != nil || !found {
		t.Fatalf("错误计数应存在: val=%q found=%v err=%v", val, found, err)
	}
	if val != "1" {
		t.Fatalf("错误计数应为 1，实际 %s", val)
	}
}

// TestCheckAccess_Lockout 连续 5 次错误后锁定，正确密码也被拒绝
func TestCheckAccess_Lockout(t *testing.T) {
	svc := NewProtectionService(kv.NewMemoryStore(), logger.GetLogger())
	link := newProtectedLink(t, "abc123", "secret")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := svc.CheckAccess(ctx, link, "wrong")
		if !errorc.IsCode(err, errorc.ErrorCodeIncorrectPassword) {
			t.Fatalf("第 %d 次错误应返回密码错误，实际 %v", i+1, err)
		}
	}

	err := svc.CheckAccess(ctx, link, "secret")
	if !errorc.IsCode(err, errorc.ErrorCodeLockedOut) {
		t.Fatalf("锁定期间正确密码也应拒绝，实际 %v", err)
	}
}

// TestCheckAccess_LockoutExpires 锁定窗口过期后恢复
func TestCheckAccess_LockoutExpires(t *testing.T) {
	store := kv.NewMemoryStore()
	current := time.Now()
	store.SetClock(func() time.Time { return current })

	svc := NewProtectionService(store, logger.GetLogger())
	link := newProtectedLink(t, "abc123", "secret")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.CheckAccess(ctx, link, "wrong")
	}
	if err := svc.CheckAccess(ctx, link, "secret"); !errorc.IsCode(err, errorc.ErrorCodeLockedOut) {
		t.Fatalf("应处于锁定状态，实际 %v", err)
	}

	current = current.Add(15*time.Minute + time.Second)

	if err := svc.CheckAccess(ctx, link, "secret"); err != nil {
		t.Fatalf("锁定过期后正确密码应放行: %v", err)
	}
}

// TestCheckAccess_LockoutScopedBySlug 锁定按短码隔离
func TestCheckAccess_LockoutScopedBySlug(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewProtectionService(store, logger.GetLogger())
	ctx := context.Background()

	first := newProtectedLink(t, "first1", "secret")
	second := newProtectedLink(t, "second", "secret")

	for i := 0; i < 5; i++ {
		svc.CheckAccess(ctx, first, "wrong")
	}

	if err := svc.CheckAccess(ctx, second, "secret"); err != nil {
		t.Fatalf("其他短码不应受锁定影响: %v", err)
	}
}
