package router

import (
	"astrolink/app"
	"astrolink/system/shorturl"
	"astrolink/system/user"

	"github.com/gofiber/fiber/v2"
)

// Register 负责集中注册所有 HTTP 路由。
// 按规范：
//   - 只依赖 app.App（业务编排入口）和 fiber.App（HTTP Server）。
//   - 不直接依赖任何 DAO / Service / system/internal 包。
//   - 不包含业务逻辑，只做分组与路由绑定。
func Register(a *app.App, f *fiber.App) {
	// 公共 API 分组
	api := f.Group("/api")

	// 注册用户组件路由（注册、登录、找回密码）
	user.RegisterRoutes(a.UserModule, api)

	// 注册短链接组件路由（跳转挂根路由，管理接口挂 api 分组）
	shorturl.RegisterRoutes(a.ShortURLModule, api, f)
}
