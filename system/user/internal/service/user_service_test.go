package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/kv"
	"astrolink/system/user/internal/dao"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newTestUserService(t *testing.T) (*UserService, sqlmock.Sqlmock, *kv.MemoryStore) {
	t.Helper()
	log := logger.GetLogger().WithEntryName("UserServiceTest")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	store := kv.NewMemoryStore()
	svc := NewUserService(dao.NewUserDao(gormDB, log), dao.NewPlanDao(gormDB, log), store, log)
	return svc, mock, store
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "deleted_at",
		"email", "password_hash", "plan_id",
	})
}

// TestRegister 注册绑定默认套餐并散列密码
func TestRegister(t *testing.T) {
	svc, mock, _ := newTestUserService(t)

	mock.ExpectQuery("SELECT count(.+) FROM `users`").
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM `plans`").
		WithArgs("FREE", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "daily_link_quota"}).
			AddRow(1, "FREE", 50))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), "new@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, int64(1), user.PlanID)
	assert.NotEqual(t, "password123", user.PasswordHash, "密码不应明文存储")
	assert.True(t, svc.VerifyPassword("password123", user.PasswordHash))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRegister_EmailTaken 邮箱已注册时拒绝
func TestRegister_EmailTaken(t *testing.T) {
	svc, mock, _ := newTestUserService(t)

	mock.ExpectQuery("SELECT count(.+) FROM `users`").
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(context.Background(), "taken@example.com", "password123")
	assert.True(t, errorc.IsCode(err, errorc.ErrorCodeValid), "应返回业务错误，实际 %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestValidateLogin 用户不存在与密码错误返回同一提示，不泄露邮箱是否注册
func TestValidateLogin(t *testing.T) {
	svc, mock, _ := newTestUserService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("a@example.com", 1).
		WillReturnRows(userRows().AddRow(1, now, now, nil, "a@example.com", string(hash), 1))

	user, err := svc.ValidateLogin(context.Background(), "a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	// 密码错误
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("a@example.com", 1).
		WillReturnRows(userRows().AddRow(1, now, now, nil, "a@example.com", string(hash), 1))
	_, wrongErr := svc.ValidateLogin(context.Background(), "a@example.com", "wrong")

	// 用户不存在
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("nobody@example.com", 1).
		WillReturnRows(userRows())
	_, missingErr := svc.ValidateLogin(context.Background(), "nobody@example.com", "password123")

	assert.True(t, errorc.IsCode(wrongErr, errorc.ErrorCodeValid))
	assert.True(t, errorc.IsCode(missingErr, errorc.ErrorCodeValid))
	assert.Equal(t, wrongErr.Error(), missingErr.Error(), "两种失败提示应一致")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestForgotPassword_RateLimit 同一 IP 每小时最多 5 次
func TestForgotPassword_RateLimit(t *testing.T) {
	svc, mock, _ := newTestUserService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		// 未注册邮箱也返回成功，不泄露注册状态
		mock.ExpectQuery("SELECT (.+) FROM `users`").
			WithArgs("nobody@example.com", 1).
			WillReturnRows(userRows())
		require.NoError(t, svc.ForgotPassword(ctx, "nobody@example.com", "1.2.3.4"))
	}

	err := svc.ForgotPassword(ctx, "nobody@example.com", "1.2.3.4")
	assert.True(t, errorc.IsCode(err, errorc.ErrorCodeTooMany), "第 6 次应限流，实际 %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestForgotThenResetPassword 重置令牌一次性使用，30 分钟有效
func TestForgotThenResetPassword(t *testing.T) {
	svc, mock, store := newTestUserService(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("a@example.com", 1).
		WillReturnRows(userRows().AddRow(7, now, now, nil, "a@example.com", "oldhash", 1))

	require.NoError(t, svc.ForgotPassword(ctx, "a@example.com", "1.2.3.4"))

	// 从存储中取出生成的令牌
	keys := store.Keys()
	var token string
	for _, key := range keys {
		if len(key) > len("user:resetToken:") && key[:len("user:resetToken:")] == "user:resetToken:" {
			token = key[len("user:resetToken:"):]
		}
	}
	require.NotEmpty(t, token, "应生成重置令牌")

	val, found, err := store.Get(ctx, "user:resetToken:"+token)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, strconv.FormatInt(7, 10), val, "令牌应指向用户 ID")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.ResetPassword(ctx, token, "newpassword"))

	// 令牌一次性，重复使用失败
	err = svc.ResetPassword(ctx, token, "another")
	assert.True(t, errorc.IsCode(err, errorc.ErrorCodeValid), "已使用令牌应失效，实际 %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestResetPassword_InvalidToken 无效令牌直接拒绝
func TestResetPassword_InvalidToken(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	err := svc.ResetPassword(context.Background(), "does-not-exist", "newpassword")
	assert.True(t, errorc.IsCode(err, errorc.ErrorCodeValid), "应返回令牌无效，实际 %v", err)
}
