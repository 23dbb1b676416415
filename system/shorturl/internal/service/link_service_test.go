package service

import (
	"testing"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/system/shorturl/internal/model"
)

func newBareLinkService() *LinkService {
	return &LinkService{err: errorc.NewErrorBuilder("LinkService")}
}

// TestNormalizeCustomSlug 自定义短码统一小写并校验格式
func TestNormalizeCustomSlug(t *testing.T) {
	svc := newBareLinkService()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"MyLink", "mylink", false},
		{"  promo-2024  ", "promo-2024", false},
		{"abc", "abc", false},
		{"ab", "", true},                 // 过短
		{"abcdefghijklmnop", "", true},   // 过长
		{"has space", "", true},          // 非法字符
		{"under_score", "", true},        // 非法字符
		{"中文短码", "", true},              // 非法字符
	}

	for _, tt := range tests {
		got, err := svc.NormalizeCustomSlug(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeCustomSlug(%q) 应返回错误", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeCustomSlug(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeCustomSlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestDetermineExpiration_Default 未指定天数时取套餐默认值
func TestDetermineExpiration_Default(t *testing.T) {
	svc := newBareLinkService()
	plan := model.CreatorPlan{DefaultExpirationDays: 30, MaxExpirationDays: 30}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	expiresAt, err := svc.DetermineExpiration(plan, 0, now)
	if err != nil {
		t.Fatalf("DetermineExpiration() error = %v", err)
	}
	if !expiresAt.Equal(now.AddDate(0, 0, 30)) {
		t.Fatalf("默认过期时间错误: %v", expiresAt)
	}
}

// TestDetermineExpiration_CustomNotAllowed 套餐不支持自定义时指定天数报错
func TestDetermineExpiration_CustomNotAllowed(t *testing.T) {
	svc := newBareLinkService()
	plan := model.CreatorPlan{DefaultExpirationDays: 30, MaxExpirationDays: 30}

	_, err := svc.DetermineExpiration(plan, 10, time.Now())
	if err == nil {
		t.Fatal("套餐不支持自定义过期时间时应报错")
	}
}

// TestDetermineExpiration_Custom 套餐支持自定义时按请求天数计算，超上限报错
func TestDetermineExpiration_Custom(t *testing.T) {
	svc := newBareLinkService()
	plan := model.CreatorPlan{
		CustomExpirationAllowed: true,
		DefaultExpirationDays:   90,
		MaxExpirationDays:       365,
	}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	expiresAt, err := svc.DetermineExpiration(plan, 100, now)
	if err != nil {
		t.Fatalf("DetermineExpiration() error = %v", err)
	}
	if !expiresAt.Equal(now.AddDate(0, 0, 100)) {
		t.Fatalf("自定义过期时间错误: %v", expiresAt)
	}

	if _, err := svc.DetermineExpiration(plan, 366, now); err == nil {
		t.Fatal("超过套餐上限应报错")
	}
	if _, err := svc.DetermineExpiration(plan, -1, now); err == nil {
		t.Fatal("负数天数应报错")
	}
}
