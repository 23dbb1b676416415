package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"astrolink/system/shorturl/internal/model"
	"astrolink/system/shorturl/internal/service"

	"github.com/go-redis/cache/v9"
	"gorm.io/gorm"
)

const (
	anonymousSlugLength     = 6
	authenticatedSlugLength = 5
	slugGenerateMaxRetries  = 10
)

// CreateLinkParams 创建短链接参数
type CreateLinkParams struct {
	TargetURL      string
	CustomSlug     string
	Password       string
	ExpirationDays int
}

// CreateShortLink 创建短链接，规则按创建者形态分流。
// 匿名：不允许自定义短码/密码/过期时间，每 IP 每天 7 条，固定 5 天后过期。
// 登录：套餐配额限流；自定义短码、密码保护、自定义过期时间均需套餐开放
func (a *App) CreateShortLink(ctx context.Context, params CreateLinkParams, creator model.Creator) (*model.Link, error) {
	switch c := creator.(type) {
	case model.AnonymousCreator:
		return a.createForAnonymous(ctx, params, c)
	case model.AuthenticatedCreator:
		return a.createForAuthenticated(ctx, params, c)
	default:
		return nil, a.err.New("未知的创建者类型", nil)
	}
}

func (a *App) createForAnonymous(ctx context.Context, params CreateLinkParams, creator model.AnonymousCreator) (*model.Link, error) {
	if params.CustomSlug != "" {
		return nil, a.err.New("匿名用户不能自定义短码", nil).Forbidden()
	}
	if params.Password != "" {
		return nil, a.err.New("匿名用户不能设置访问密码", nil).Forbidden()
	}
	if params.ExpirationDays != 0 {
		return nil, a.err.New("匿名用户不能自定义过期时间", nil).Forbidden()
	}

	if err := a.RateLimiter.AllowAnonymousCreation(ctx, creator.IP); err != nil {
		return nil, err
	}

	slug, err := a.LinkService.GenerateUniqueSlug(ctx, anonymousSlugLength, slugGenerateMaxRetries)
	if err != nil {
		return nil, err
	}

	link := &model.Link{
		Slug:      slug,
		TargetURL: params.TargetURL,
		ExpiresAt: time.Now().AddDate(0, 0, service.AnonymousExpirationDays),
	}
	return a.persistLink(ctx, link)
}

func (a *App) createForAuthenticated(ctx context.Context, params CreateLinkParams, creator model.AuthenticatedCreator) (*model.Link, error) {
	if err := a.RateLimiter.AllowUserCreation(ctx, creator.UserID, creator.Plan.DailyLinkQuota); err != nil {
		return nil, err
	}

	slug, err := a.determineSlug(ctx, params.CustomSlug, creator.Plan)
	if err != nil {
		return nil, err
	}

	expiresAt, err := a.LinkService.DetermineExpiration(creator.Plan, params.ExpirationDays, time.Now())
	if err != nil {
		return nil, err
	}

	link := &model.Link{
		Slug:      slug,
		TargetURL: params.TargetURL,
		OwnerID:   &creator.UserID,
		ExpiresAt: expiresAt,
	}

	if params.Password != "" {
		if !creator.Plan.PasswordProtectionAllowed {
			return nil, a.err.New("当前套餐不支持密码保护", nil).Forbidden()
		}
		hash, err := a.LinkService.HashPassword(params.Password)
		if err != nil {
			return nil, err
		}
		link.PasswordHash = hash
	}

	return a.persistLink(ctx, link)
}

func (a *App) determineSlug(ctx context.Context, customSlug string, plan model.CreatorPlan) (string, error) {
	if customSlug == "" {
		return a.LinkService.GenerateUniqueSlug(ctx, authenticatedSlugLength, slugGenerateMaxRetries)
	}

	if !plan.CustomSlugAllowed {
		return "", a.err.New("当前套餐不支持自定义短码", nil).Forbidden()
	}

	slug, err := a.LinkService.NormalizeCustomSlug(customSlug)
	if err != nil {
		return "", err
	}

	exists, err := a.LinkDao.ExistsBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if exists {
		return "", a.err.New("短码已被占用", nil).ValidWithCtx()
	}
	return slug, nil
}

func (a *App) persistLink(ctx context.Context, link *model.Link) (*model.Link, error) {
	if err := a.LinkDao.Create(ctx, link); err != nil {
		// 并发下唯一索引可能在存在性检查后仍然冲突
		if isDuplicateKey(err) {
			return nil, a.err.New("短码已被占用", err).ValidWithCtx()
		}
		return nil, err
	}
	return link, nil
}

// TranslateError 开启后方言驱动会把唯一索引冲突翻译成 gorm.ErrDuplicatedKey
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// UpdateLinkParams 更新短链接参数，nil 字段表示不修改
type UpdateLinkParams struct {
	TargetURL      *string
	CustomSlug     *string
	Password       *string
	ExpirationDays *int
}

// UpdateShortLink 更新短链接（仅限归属用户）。短码变更会使旧缓存失效
func (a *App) UpdateShortLink(ctx context.Context, linkID int64, params UpdateLinkParams, creator model.AuthenticatedCreator) (*model.Link, error) {
	link, err := a.LinkDao.FindById(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if !link.IsOwnedBy(creator.UserID) {
		return nil, a.err.New("无权操作该短链接", nil).Forbidden()
	}

	oldSlug := link.Slug

	if params.CustomSlug != nil && *params.CustomSlug != "" && !strings.EqualFold(*params.CustomSlug, link.Slug) {
		slug, err := a.determineSlug(ctx, *params.CustomSlug, creator.Plan)
		if err != nil {
			return nil, err
		}
		link.Slug = slug
	}

	if params.TargetURL != nil && *params.TargetURL != "" {
		link.TargetURL = *params.TargetURL
	}

	if params.ExpirationDays != nil {
		expiresAt, err := a.LinkService.DetermineExpiration(creator.Plan, *params.ExpirationDays, time.Now())
		if err != nil {
			return nil, err
		}
		link.ExpiresAt = expiresAt
	}

	if params.Password != nil {
		if *params.Password == "" {
			link.PasswordHash = ""
		} else {
			if !creator.Plan.PasswordProtectionAllowed {
				return nil, a.err.New("当前套餐不支持密码保护", nil).Forbidden()
			}
			hash, err := a.LinkService.HashPassword(*params.Password)
			if err != nil {
				return nil, err
			}
			link.PasswordHash = hash
		}
	}

	// map 更新保证清空密码散列这类零值也能写入
	err = a.LinkDao.UpdateFields(ctx, link.ID, map[string]interface{}{
		"slug":          link.Slug,
		"target_url":    link.TargetURL,
		"expires_at":    link.ExpiresAt,
		"password_hash": link.PasswordHash,
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, a.err.New("短码已被占用", err).ValidWithCtx()
		}
		return nil, err
	}

	// 目标地址或短码变更后旧缓存不再可信
	a.invalidateSlugCache(ctx, oldSlug)
	if link.Slug != oldSlug {
		a.invalidateSlugCache(ctx, link.Slug)
	}

	return link, nil
}

// DeleteShortLink 删除短链接（仅限归属用户），连同缓存一起清理
func (a *App) DeleteShortLink(ctx context.Context, linkID int64, userID int64) error {
	link, err := a.LinkDao.FindById(ctx, linkID)
	if err != nil {
		return err
	}
	if !link.IsOwnedBy(userID) {
		return a.err.New("无权操作该短链接", nil).Forbidden()
	}

	if err := a.LinkDao.DeleteById(ctx, linkID); err != nil {
		return err
	}

	a.invalidateSlugCache(ctx, link.Slug)
	return nil
}

// ListUserLinks 分页查询用户的短链接
func (a *App) ListUserLinks(ctx context.Context, userID int64, pageNum, pageSize int) ([]*model.Link, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return a.LinkDao.ListByOwnerWithPage(ctx, userID, pageNum, pageSize)
}

// LinkStats 短链接统计结果
type LinkStats struct {
	Slug           string
	ClickCount     int64
	LastAccessedAt *time.Time
	DailyClicks    []*model.DailyClickCount
}

// GetLinkStats 查询短链接统计（仅限归属用户）。
// 最后访问时间优先取点击事件表的最新记录，比小时级聚合列更实时；
// 近 7 天按天点击数缺失的日期补零
func (a *App) GetLinkStats(ctx context.Context, slug string, userID int64) (*LinkStats, error) {
	link, err := a.LinkDao.FindBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}
	if !link.IsOwnedBy(userID) {
		return nil, a.err.New("无权查看该短链接统计", nil).Forbidden()
	}

	lastAccessed := link.LastAccessedAt
	latest, err := a.ClickEventDao.FindLatestByLinkId(ctx, link.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		lastAccessed = &latest.Timestamp
	}

	now := time.Now()
	sevenDaysAgo := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	daily, err := a.ClickEventDao.CountDailySince(ctx, link.ID, sevenDaysAgo)
	if err != nil {
		return nil, err
	}

	return &LinkStats{
		Slug:           link.Slug,
		ClickCount:     link.ClickCount,
		LastAccessedAt: lastAccessed,
		DailyClicks:    fillDailyClicks(daily, now),
	}, nil
}

// fillDailyClicks 将数据库按天分组的结果补齐为连续 7 天，升序排列
func fillDailyClicks(rows []*model.DailyClickCount, now time.Time) []*model.DailyClickCount {
	byDay := make(map[string]int64, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row.Count
	}

	result := make([]*model.DailyClickCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		result = append(result, &model.DailyClickCount{
			Day:   day,
			Count: byDay[day],
		})
	}
	return result
}

func (a *App) invalidateSlugCache(ctx context.Context, slug string) {
	if err := a.cache.Delete(ctx, service.SlugCacheKey(slug)); err != nil && err != cache.ErrCacheMiss {
		a.log.WithErr(err).WithField("slug", slug).Warn("清理解析缓存失败")
	}
}
