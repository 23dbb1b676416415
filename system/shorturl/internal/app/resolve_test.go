package app

import (
	"context"
	"testing"
	"time"

	errorc "astrolink/pkg/core/err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestResolve_ColdThenWarm 首次解析回源并回填缓存，再次解析命中缓存但仍回查存在性
func TestResolve_ColdThenWarm(t *testing.T) {
	ta := newTestApp(t)
	now := time.Now()

	// 冷启动回源
	ta.mock.ExpectQuery("SELECT (.+) FROM `shorturl_links`").
		WillReturnRows(ta.linkRows().
			AddRow(1, now, now, nil, "abc123", "https://example.com", nil, now.Add(time.Hour), "", 0, nil))
	// 缓存命中后的存在性回查
	ta.mock.ExpectQuery("SELECT (.+) FROM `shorturl_links`").
		WillReturnRows(ta.linkRows().
			AddRow(1, now, now, nil, "abc123", "https://example.com", nil, now.Add(time.Hour), "", 0, nil))

	url, err := ta.Resolve(context.Background(), "abc123", "", "1.2.3.4", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", url)

	url, err = ta.Resolve(context.Background(), "ABC123", "", "1.2.3.4", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", url)

	ta.waitClicks(t, 2)
	assert.NoError(t, ta.mock.ExpectationsWereMet())
}

// TestResolve_NotFound 短码不存在返回 404
func TestResolve_NotFound(t *testing.T) {
	ta := newTestApp(t)

	ta.mock.ExpectQuery("SELECT (.+) FROM `shorturl_links`").
		WillReturnRows(ta.linkRows())

	_, err := ta.Resolve(context.Background(), "missing", "", "1.2.3.4", "test-agent")
	assert.True(t, errorc.IsCode(err, errorc.ErrorCodeNotFound), "应返回 404，实际 %v", err)
	assert.Zero(t, ta.clicks.count(), "未命中不应记点击")
}

// TestResolve_Expired 已过期的短链接返回 410，且不记点击
func TestResolve_Expired(t *testing.T) {
	ta := newTestApp(t)
	now := time.Now()

	ta.mock.ExpectQuery("SELECT (.+) FROM `shorturl_links`").
		WillReturnRows(ta.linkRows().
			AddRow(1, now, now, nil, "old111", "https://example.com", nil, now.Add(-time.Minute), "", 0, nil))

	_, err := ta.Resolve(context.Background(), "old111", "", "1.2.3.4", "test-agent")
	assert.True(t, errorc.IsCode(err, errorc.ErrorCodeGone), "应返回 410，实际 %v", err)
	assert.Zero(t, ta.clicks.count(), "过期访问不应记点击")
}

// TestResolve_PasswordRequired 受保护链接未提供密码时拒绝且不回填缓存
func TestResolve_PasswordRequired(t *testing.T) {
	ta := newTestApp(t)
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	ta.mock.ExpectQuery("SELECT (.+) FROM `shorturl_links`").
		WillReturnRows(ta.linkRows().
			AddRow(1, now, now, nil, "locked", "https://example.com", nil, now.Add(time.Hour), string(hash), 0, nil))
	// 被拒绝的访问不应写缓存，第二次解析仍然回源
	ta.mock.ExpectQuery("SELECT (.+) FROM `shorturl_links`").
		WillReturnRows(ta.linkRows().
			AddRow(1, now, now, nil, "locked", "https://example.com", nil, now.Add(time.Hour), string(hash), 0, nil))

	_, err = ta.Resolve(context.Background(), "locked", "", "1.2.3.4", "test-agent")
	assert.True(t, errorc.IsCode(err, errorc.ErrorCodePasswordRequired), "应提示需要密码，实际 %v", err)

	url, err := ta.Resolve(context.Background(), "locked", "secret", "1.2.3.4", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", url)

	ta.waitClicks(t, 1)
	assert.Equal(t, 1, ta.clicks.count(), "仅校验通过的访问记点击")
	assert.NoError(t, ta.mock.ExpectationsWereMet())
}
