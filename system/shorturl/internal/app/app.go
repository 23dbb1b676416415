package app

import (
	"context"

	"astrolink/base"
	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/kv"
	"astrolink/system/shorturl/internal/dao"
	"astrolink/system/shorturl/internal/model"
	"astrolink/system/shorturl/internal/service"

	"github.com/go-redis/cache/v9"
)

// PlanProvider 查询创建者套餐能力（由用户组件适配实现）
type PlanProvider interface {
	GetCreatorPlan(ctx context.Context, userID int64) (*model.CreatorPlan, error)
}

// App 短链接组件应用层
type App struct {
	LinkService       *service.LinkService
	ProtectionService *service.ProtectionService
	RateLimiter       *service.RateLimiter
	ClickRecorder     *service.ClickRecorder
	LinkDao           *dao.LinkDao
	ClickEventDao     *dao.ClickEventDao

	cache *cache.Cache
	store kv.Store
	plans PlanProvider
	log   *logger.Log
	err   *errorc.ErrorBuilder
}

// NewApp 创建短链接组件应用层实例
func NewApp(plans PlanProvider) *App {
	log := logger.GetLogger().WithEntryName("ShortURLApp")

	// 初始化 DAO
	linkDao := dao.NewLinkDao(base.DB, log)
	clickEventDao := dao.NewClickEventDao(base.DB, log)

	// 初始化 Service
	linkSvc := service.NewLinkService(linkDao, log)
	protectionSvc := service.NewProtectionService(base.KV, log)
	rateLimiter := service.NewRateLimiter(base.KV, log)
	clickRecorder := service.NewClickRecorder(clickEventDao, log)

	return &App{
		LinkService:       linkSvc,
		ProtectionService: protectionSvc,
		RateLimiter:       rateLimiter,
		ClickRecorder:     clickRecorder,
		LinkDao:           linkDao,
		ClickEventDao:     clickEventDao,
		cache:             base.Cache,
		store:             base.KV,
		plans:             plans,
		log:               log,
		err:               errorc.NewErrorBuilder("ShortURLApp"),
	}
}

// AuthenticatedCreator 组装已登录创建者（查询其套餐能力快照）
func (a *App) AuthenticatedCreator(ctx context.Context, userID int64) (model.AuthenticatedCreator, error) {
	plan, err := a.plans.GetCreatorPlan(ctx, userID)
	if err != nil {
		return model.AuthenticatedCreator{}, err
	}
	return model.AuthenticatedCreator{UserID: userID, Plan: *plan}, nil
}

// Close 停止后台组件，等待点击队列清空
func (a *App) Close() {
	a.ClickRecorder.Close()
}
