package shorturl

import (
	controller "astrolink/system/shorturl/external/http"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 注册短链接组件的所有 HTTP 路由。
// 跳转接口挂在根路由（/r/:slug），管理接口挂在 api 分组下
func RegisterRoutes(m *Module, api, root fiber.Router) {
	redirectController := controller.NewRedirectController(m.internalApp)
	redirectController.RegisterRoutes(root)

	apiController := controller.NewLinkAPIController(m.internalApp)
	apiController.RegisterRoutes(api)
}
