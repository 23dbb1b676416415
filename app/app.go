package app

import (
	"astrolink/system/shorturl"
	"astrolink/system/user"
)

// App 应用组合根，持有所有业务模块
type App struct {
	UserModule     *user.Module
	ShortURLModule *shorturl.Module
}

// NewApp 创建应用组合根。短链接组件依赖用户组件的对外客户端获取套餐能力
func NewApp() *App {
	userModule := user.NewModule()
	shortURLModule := shorturl.NewModule(userModule.Client)

	return &App{
		UserModule:     userModule,
		ShortURLModule: shortURLModule,
	}
}

// Close 停止所有模块的后台组件
func (a *App) Close() {
	a.ShortURLModule.Close()
}
