package shorturl

import (
	"context"
	"time"

	"astrolink/pkg/core/logger"
	"astrolink/pkg/scheduler"
	internalapp "astrolink/system/shorturl/internal/app"
	"astrolink/system/shorturl/internal/model"
	userclient "astrolink/system/user/api/client"
)

// Module 短链接组件模块
type Module struct {
	internalApp *internalapp.App
	log         *logger.Log
}

// NewModule 创建短链接组件模块，套餐能力由用户组件提供
func NewModule(userClient *userclient.UserClient) *Module {
	log := logger.GetLogger().WithEntryName("ShortURLModule")

	app := internalapp.NewApp(&planProviderAdapter{client: userClient})

	return &Module{
		internalApp: app,
		log:         log,
	}
}

// RegisterJobs 注册批处理任务。
// 点击聚合每小时整点执行，过期清理每天零点执行；
// 两者都是分布式任务，多实例部署时由调度器的 redis 锁保证不重叠
func (m *Module) RegisterJobs(s *scheduler.Scheduler) error {
	aggregation := scheduler.NewCronTask("shorturl-click-aggregation", "0 0 * * * *",
		scheduler.TaskExecuteModeDistributed, 30*time.Minute, m.internalApp.RunClickAggregation)
	if err := s.AddTask(aggregation); err != nil {
		return err
	}

	sweep := scheduler.NewCronTask("shorturl-expiration-sweep", "0 0 0 * * *",
		scheduler.TaskExecuteModeDistributed, time.Hour, m.internalApp.RunExpirationSweep)
	return s.AddTask(sweep)
}

// Close 停止组件，等待点击队列清空
func (m *Module) Close() {
	m.internalApp.Close()
}

// planProviderAdapter 把用户组件的套餐 DTO 换算成本组件的能力快照
type planProviderAdapter struct {
	client *userclient.UserClient
}

func (p *planProviderAdapter) GetCreatorPlan(ctx context.Context, userID int64) (*model.CreatorPlan, error) {
	plan, err := p.client.GetUserPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.CreatorPlan{
		DailyLinkQuota:            plan.DailyLinkQuota,
		CustomSlugAllowed:         plan.CustomSlugAllowed,
		PasswordProtectionAllowed: plan.PasswordProtectionAllowed,
		CustomExpirationAllowed:   plan.CustomExpirationAllowed,
		DefaultExpirationDays:     plan.DefaultExpirationDays,
		MaxExpirationDays:         plan.MaxExpirationDays,
	}, nil
}

var _ internalapp.PlanProvider = (*planProviderAdapter)(nil)
