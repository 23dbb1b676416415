package app

import (
	"context"
	"strings"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/system/shorturl/internal/model"
	"astrolink/system/shorturl/internal/service"

	"github.com/go-redis/cache/v9"
)

// 缓存 TTL 在剩余有效期上额外保留的宽限，避免边界上缓存先于库过期
const cacheTTLGrace = 60 * time.Second

// Resolve 解析短码并记录点击，返回目标 URL。
//
// 缓存命中：回查数据库确认链接仍然存在且未过期后才记点击，命中即返回缓存值
// （密码校验只在回源路径做，已缓存的链接视为近期校验通过）。
// 缓存未命中或缓存读取失败：回源数据库；不存在返回 404，已过期先清缓存再返回
// 410；通过密码校验后回填缓存并记点击。
// 点击只在校验全部通过后投递，被拒绝的访问不产生点击
func (a *App) Resolve(ctx context.Context, slug, password, ip, userAgent string) (string, error) {
	slug = strings.ToLower(slug)
	cacheKey := service.SlugCacheKey(slug)

	var cachedURL string
	err := a.cache.Get(ctx, cacheKey, &cachedURL)
	if err == nil {
		a.handleCacheHit(ctx, slug, ip, userAgent)
		return cachedURL, nil
	}
	if err != cache.ErrCacheMiss {
		// 缓存故障降级为回源，不影响可用性
		a.log.WithErr(err).WithField("slug", slug).Warn("读取解析缓存失败，回源数据库")
	}

	return a.handleCacheMiss(ctx, slug, password, ip, userAgent)
}

func (a *App) handleCacheHit(ctx context.Context, slug, ip, userAgent string) {
	link, err := a.LinkDao.FindBySlug(ctx, slug)
	if err != nil {
		if !errorc.IsNotFound(err) {
			a.log.WithErr(err).WithField("slug", slug).Warn("缓存命中后回查失败，跳过点击记录")
		}
		return
	}
	if link.IsExpired(time.Now()) {
		return
	}
	a.ClickRecorder.Record(link.ID, ip, userAgent)
}

func (a *App) handleCacheMiss(ctx context.Context, slug, password, ip, userAgent string) (string, error) {
	link, err := a.findActiveLink(ctx, slug)
	if err != nil {
		return "", err
	}

	if err := a.ProtectionService.CheckAccess(ctx, link, password); err != nil {
		return "", err
	}

	a.cacheLink(ctx, link)
	a.ClickRecorder.Record(link.ID, ip, userAgent)
	return link.TargetURL, nil
}

func (a *App) findActiveLink(ctx context.Context, slug string) (*model.Link, error) {
	link, err := a.LinkDao.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if link.IsExpired(time.Now()) {
		if err := a.cache.Delete(ctx, service.SlugCacheKey(slug)); err != nil && err != cache.ErrCacheMiss {
			a.log.WithErr(err).WithField("slug", slug).Warn("清理过期缓存失败")
		}
		return nil, a.err.New("短链接已过期", nil).Gone()
	}
	return link, nil
}

func (a *App) cacheLink(ctx context.Context, link *model.Link) {
	ttl := link.RemainingTTL(time.Now())
	if ttl <= 0 {
		return
	}

	err := a.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   service.SlugCacheKey(link.Slug),
		Value: link.TargetURL,
		TTL:   ttl + cacheTTLGrace,
	})
	if err != nil {
		a.log.WithErr(err).WithField("slug", link.Slug).Warn("写入解析缓存失败")
	}
}
