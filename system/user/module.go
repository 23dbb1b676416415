package user

import (
	"context"

	"astrolink/base"
	"astrolink/system/user/api/client"
	"astrolink/system/user/internal/app"
	"astrolink/system/user/internal/model"
)

// Module 用户组件模块门面（对外暴露的根对象）
type Module struct {
	// internalApp 内部应用实例，仅供组件内部使用
	internalApp *app.App
	// Client 对外客户端，供其他组件调用用户能力
	Client *client.UserClient
}

// NewModule 创建用户组件模块实例
func NewModule() *Module {
	internalApp := app.NewApp()

	return &Module{
		internalApp: internalApp,
		Client:      client.NewUserClient(internalApp),
	}
}

// EnsureBootstrapPlans 确保内置套餐存在。FREE 为注册用户默认套餐，
// PRO 开放自定义短码、密码保护和自定义过期时间
func (m *Module) EnsureBootstrapPlans(ctx context.Context) error {
	plans := []*model.Plan{
		{
			Name:                  model.DefaultPlanName,
			DailyLinkQuota:        50,
			DefaultExpirationDays: 30,
			MaxExpirationDays:     30,
		},
		{
			Name:                      "PRO",
			DailyLinkQuota:            -1,
			CustomSlugAllowed:         true,
			PasswordProtectionAllowed: true,
			CustomExpirationAllowed:   true,
			DefaultExpirationDays:     90,
			MaxExpirationDays:         365,
		},
	}

	if err := m.internalApp.PlanDao.EnsureDefaults(ctx, plans); err != nil {
		base.Logger.WithErr(err).Error("初始化内置套餐失败")
		return err
	}

	base.Logger.Info("内置套餐初始化完成")
	return nil
}
