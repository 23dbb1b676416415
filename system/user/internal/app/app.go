package app

import (
	"astrolink/base"
	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/system/user/internal/dao"
	"astrolink/system/user/internal/service"
)

// App 用户组件应用层
type App struct {
	UserService *service.UserService
	PlanDao     *dao.PlanDao
	log         *logger.Log
	err         *errorc.ErrorBuilder
}

// NewApp 创建用户组件应用层实例
func NewApp() *App {
	log := logger.GetLogger().WithEntryName("UserApp")

	// 初始化 DAO
	userDao := dao.NewUserDao(base.DB, log)
	planDao := dao.NewPlanDao(base.DB, log)

	// 初始化 Service
	userSvc := service.NewUserService(userDao, planDao, base.KV, log)

	return &App{
		UserService: userSvc,
		PlanDao:     planDao,
		log:         log,
		err:         errorc.NewErrorBuilder("UserApp"),
	}
}
