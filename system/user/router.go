package user

import (
	controller "astrolink/system/user/external/http"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 注册用户组件的所有 HTTP 路由
func RegisterRoutes(m *Module, api fiber.Router) {
	userController := controller.NewUserController(m.internalApp)
	userController.RegisterRoutes(api)
}
