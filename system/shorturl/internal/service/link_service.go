package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/mvc"
	"astrolink/system/shorturl/internal/dao"
	"astrolink/system/shorturl/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const (
	slugMinLength = 3
	slugMaxLength = 15

	// AnonymousExpirationDays 匿名短链接固定 5 天后过期
	AnonymousExpirationDays = 5
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// LinkService 短链接业务逻辑层
type LinkService struct {
	mvc.IBaseService[model.Link]
	Dao *dao.LinkDao
	log *logger.Log
	err *errorc.ErrorBuilder
}

// NewLinkService 创建短链接服务实例
func NewLinkService(daoInstance *dao.LinkDao, log *logger.Log) *LinkService {
	return &LinkService{
		IBaseService: mvc.NewBaseService[model.Link](daoInstance.IBaseDao),
		Dao:          daoInstance,
		log:          log.WithEntryName("LinkService"),
		err:          errorc.NewErrorBuilder("LinkService"),
	}
}

// GenerateUniqueSlug 生成唯一短码（带冲突重试）
func (s *LinkService) GenerateUniqueSlug(ctx context.Context, length int, maxRetries int) (string, error) {
	if length <= 0 {
		length = DefaultSlugLength
	}
	if maxRetries <= 0 {
		maxRetries = 10
	}

	for i := 0; i < maxRetries; i++ {
		slug, err := GenerateSlug(length)
		if err != nil {
			return "", s.err.New("生成短码失败", err)
		}

		exists, err := s.Dao.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
	}

	return "", s.err.New("生成唯一短码失败（超过重试次数）", nil)
}

// NormalizeCustomSlug 规范化并校验自定义短码：统一小写，3-15 位字母数字或连字符
func (s *LinkService) NormalizeCustomSlug(slug string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if len(slug) < slugMinLength || len(slug) > slugMaxLength {
		return "", s.err.New("自定义短码长度需为 3-15 位", nil).ValidWithCtx()
	}
	if !slugPattern.MatchString(slug) {
		return "", s.err.New("自定义短码仅允许小写字母、数字和连字符", nil).ValidWithCtx()
	}
	return slug, nil
}

// HashPassword 散列访问密码
func (s *LinkService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", s.err.New("密码散列失败", err)
	}
	return string(hash), nil
}

// DetermineExpiration 按创建者套餐计算过期时间。
// 请求天数为 0 表示未指定，使用套餐默认值；指定时不得超过套餐上限，
// 且仅在套餐允许自定义时生效
func (s *LinkService) DetermineExpiration(plan model.CreatorPlan, requestedDays int, now time.Time) (time.Time, error) {
	if requestedDays == 0 {
		return now.AddDate(0, 0, plan.DefaultExpirationDays), nil
	}
	if !plan.CustomExpirationAllowed {
		return time.Time{}, s.err.New("当前套餐不支持自定义过期时间", nil).ValidWithCtx()
	}
	if requestedDays < 0 || requestedDays > plan.MaxExpirationDays {
		return time.Time{}, s.err.New("过期天数超出套餐上限", nil).ValidWithCtx()
	}
	return now.AddDate(0, 0, requestedDays), nil
}
