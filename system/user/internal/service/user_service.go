package service

import (
	"context"
	"strconv"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/mvc"
	"astrolink/pkg/kv"
	"astrolink/system/user/internal/dao"
	"astrolink/system/user/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	forgotPasswordLimit  = 5
	forgotPasswordWindow = time.Hour
	resetTokenTTL        = 30 * time.Minute
)

// UserService 用户业务逻辑层
type UserService struct {
	mvc.IBaseService[model.User]
	dao     *dao.UserDao
	planDao *dao.PlanDao
	store   kv.Store
	limiter *kv.FixedWindow
	log     *logger.Log
	err     *errorc.ErrorBuilder
}

// NewUserService 创建用户服务实例
func NewUserService(userDao *dao.UserDao, planDao *dao.PlanDao, store kv.Store, log *logger.Log) *UserService {
	return &UserService{
		IBaseService: mvc.NewBaseService[model.User](userDao.IBaseDao),
		dao:          userDao,
		planDao:      planDao,
		store:        store,
		limiter:      kv.NewFixedWindow(store),
		log:          log.WithEntryName("UserService"),
		err:          errorc.NewErrorBuilder("UserService"),
	}
}

func forgotPasswordKey(ip string) string {
	return "rate_limit:forgot_password:ip:" + ip
}

func resetTokenKey(token string) string {
	return "user:resetToken:" + token
}

// Register 注册用户（自动散列密码，绑定默认套餐）
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	exists, err := s.dao.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, s.err.New("邮箱已被注册", nil).ValidWithCtx()
	}

	plan, err := s.planDao.FindByName(ctx, model.DefaultPlanName)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: passwordHash,
		PlanID:       plan.ID,
	}
	if err := s.dao.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateLogin 验证用户登录
func (s *UserService) ValidateLogin(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.dao.FindByEmail(ctx, email)
	if err != nil {
		if errorc.IsNotFound(err) {
			return nil, s.err.New("邮箱或密码错误", nil).ValidWithCtx()
		}
		return nil, err
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return nil, s.err.New("邮箱或密码错误", nil).ValidWithCtx()
	}
	return user, nil
}

// FindPlan 查询用户所属套餐
func (s *UserService) FindPlan(ctx context.Context, user *model.User) (*model.Plan, error) {
	return s.planDao.FindById(ctx, user.PlanID)
}

// ForgotPassword 发起找回密码流程。同一 IP 每小时最多 5 次；
// 为已注册邮箱生成一次性重置令牌写入 redis（30 分钟有效）。
// 邮箱是否存在不向调用方泄露，仅在日志中记录令牌（暂无邮件通道）
func (s *UserService) ForgotPassword(ctx context.Context, email, ip string) error {
	allowed, err := s.limiter.Allow(ctx, forgotPasswordKey(ip), forgotPasswordLimit, forgotPasswordWindow)
	if err != nil {
		s.log.WithErr(err).Warn("找回密码限流检查失败，按拒绝处理")
		return s.err.New("请求过于频繁，请稍后再试", err).TooMany()
	}
	if !allowed {
		return s.err.New("请求过于频繁，请稍后再试", nil).TooMany()
	}

	user, err := s.dao.FindByEmail(ctx, email)
	if err != nil {
		if errorc.IsNotFound(err) {
			// 不泄露邮箱是否注册
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.store.Set(ctx, resetTokenKey(token), strconv.FormatInt(user.ID, 10), resetTokenTTL); err != nil {
		return s.err.New("写入重置令牌失败", err).Third()
	}

	s.log.WithUserID(user.ID).WithField("resetToken", token).Info("已生成密码重置令牌")
	return nil
}

// ResetPassword 使用重置令牌设置新密码，令牌一次性使用
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	val, found, err := s.store.Get(ctx, resetTokenKey(token))
	if err != nil {
		return s.err.New("读取重置令牌失败", err).Third()
	}
	if !found {
		return s.err.New("重置令牌无效或已过期", nil).ValidWithCtx()
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return s.err.New("重置令牌内容异常", err)
	}

	passwordHash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.dao.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	if err := s.store.Del(ctx, resetTokenKey(token)); err != nil {
		s.log.WithErr(err).Warn("删除已使用的重置令牌失败")
	}
	return nil
}

// HashPassword 散列密码
func (s *UserService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", s.err.New("密码散列失败", err)
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *UserService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
