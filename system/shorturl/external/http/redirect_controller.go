package http

import (
	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/util"
	internalapp "astrolink/system/shorturl/internal/app"

	"github.com/gofiber/fiber/v2"
)

// RedirectController 短链接跳转控制器（无鉴权，挂在根路由）
type RedirectController struct {
	app *internalapp.App
	err *errorc.ErrorBuilder
	log *logger.Log
}

// NewRedirectController 创建跳转控制器
func NewRedirectController(app *internalapp.App) *RedirectController {
	return &RedirectController{
		app: app,
		err: errorc.NewErrorBuilder("RedirectController"),
		log: logger.GetLogger().WithEntryName("RedirectController"),
	}
}

// RegisterRoutes 注册路由
func (c *RedirectController) RegisterRoutes(root fiber.Router) {
	root.Get("/r/:slug", c.Redirect)
}

// Redirect 访问短链接并跳转。受密码保护的链接通过 ?password= 提交密码；
// 需要密码时返回 401 且响应体带 passwordRequired 标记
func (c *RedirectController) Redirect(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")
	password := ctx.Query("password", "")
	ip := util.ClientIP(ctx)

	if err := c.app.RateLimiter.AllowRedirect(util.Context(ctx), ip); err != nil {
		return err
	}

	userAgent := ctx.Get("User-Agent")
	targetURL, err := c.app.Resolve(util.Context(ctx), slug, password, ip, userAgent)
	if err != nil {
		return err
	}

	return ctx.Redirect(targetURL, fiber.StatusMovedPermanently)
}
