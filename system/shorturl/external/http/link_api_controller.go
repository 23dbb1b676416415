package http

import (
	"astrolink/base"
	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/result"
	"astrolink/pkg/core/security"
	"astrolink/pkg/core/util"
	"astrolink/system/shorturl/api/dto"
	internalapp "astrolink/system/shorturl/internal/app"
	"astrolink/system/shorturl/internal/model"
	"astrolink/utils"

	"github.com/gofiber/fiber/v2"
)

// LinkAPIController 短链接管理控制器
type LinkAPIController struct {
	app *internalapp.App
	err *errorc.ErrorBuilder
	log *logger.Log
}

// NewLinkAPIController 创建短链接管理控制器
func NewLinkAPIController(app *internalapp.App) *LinkAPIController {
	return &LinkAPIController{
		app: app,
		err: errorc.NewErrorBuilder("LinkAPIController"),
		log: logger.GetLogger().WithEntryName("LinkAPIController"),
	}
}

// RegisterRoutes 注册路由
func (c *LinkAPIController) RegisterRoutes(api fiber.Router) {
	links := api.Group("/links")

	// 创建对匿名开放，带 token 则按登录用户处理
	links.Post("/", base.UserAuth.OptionalAuth(), c.Create)

	links.Get("/", base.UserAuth.RequireAuth(), c.List)
	links.Put("/:id", base.UserAuth.RequireAuth(), c.Update)
	links.Delete("/:id", base.UserAuth.RequireAuth(), c.Delete)
	links.Get("/:slug/stats", base.UserAuth.RequireAuth(), c.Stats)
}

// Create 创建短链接
func (c *LinkAPIController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.err.New("解析请求参数失败", err).ValidWithCtx()
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return c.err.New(errMsg, err).ValidWithCtx()
	}

	creator, err := c.resolveCreator(ctx)
	if err != nil {
		return err
	}

	link, err := c.app.CreateShortLink(util.Context(ctx), internalapp.CreateLinkParams{
		TargetURL:      req.TargetURL,
		CustomSlug:     req.CustomSlug,
		Password:       req.Password,
		ExpirationDays: req.ExpirationDays,
	}, creator)
	if err != nil {
		return err
	}

	return result.OK(ctx, c.convertLink(link))
}

// List 分页查询当前用户的短链接
func (c *LinkAPIController) List(ctx *fiber.Ctx) error {
	userID, ok := security.CurrentUserID(ctx)
	if !ok {
		return c.err.New("未登录", nil).NoAuth()
	}

	pageNum := ctx.QueryInt("pageNum", 1)
	pageSize := ctx.QueryInt("pageSize", 20)

	links, total, err := c.app.ListUserLinks(util.Context(ctx), userID, pageNum, pageSize)
	if err != nil {
		return err
	}

	list := make([]*dto.LinkDTO, 0, len(links))
	for _, link := range links {
		list = append(list, c.convertLink(link))
	}

	return result.OK(ctx, &dto.LinkPageDTO{Total: total, List: list})
}

// Update 更新短链接
func (c *LinkAPIController) Update(ctx *fiber.Ctx) error {
	linkID, err := ctx.ParamsInt("id")
	if err != nil {
		return c.err.New("链接ID格式错误", err).ValidWithCtx()
	}

	var req dto.UpdateLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.err.New("解析请求参数失败", err).ValidWithCtx()
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return c.err.New(errMsg, err).ValidWithCtx()
	}

	creator, err := c.authenticatedCreator(ctx)
	if err != nil {
		return err
	}

	link, err := c.app.UpdateShortLink(util.Context(ctx), int64(linkID), internalapp.UpdateLinkParams{
		TargetURL:      req.TargetURL,
		CustomSlug:     req.CustomSlug,
		Password:       req.Password,
		ExpirationDays: req.ExpirationDays,
	}, creator)
	if err != nil {
		return err
	}

	return result.OK(ctx, c.convertLink(link))
}

// Delete 删除短链接
func (c *LinkAPIController) Delete(ctx *fiber.Ctx) error {
	linkID, err := ctx.ParamsInt("id")
	if err != nil {
		return c.err.New("链接ID格式错误", err).ValidWithCtx()
	}

	userID, ok := security.CurrentUserID(ctx)
	if !ok {
		return c.err.New("未登录", nil).NoAuth()
	}

	if err := c.app.DeleteShortLink(util.Context(ctx), int64(linkID), userID); err != nil {
		return err
	}

	return result.OK(ctx, fiber.Map{"message": "已删除"})
}

// Stats 查询短链接统计
func (c *LinkAPIController) Stats(ctx *fiber.Ctx) error {
	userID, ok := security.CurrentUserID(ctx)
	if !ok {
		return c.err.New("未登录", nil).NoAuth()
	}

	stats, err := c.app.GetLinkStats(util.Context(ctx), ctx.Params("slug"), userID)
	if err != nil {
		return err
	}

	daily := make([]*dto.DailyClickDTO, 0, len(stats.DailyClicks))
	for _, row := range stats.DailyClicks {
		daily = append(daily, &dto.DailyClickDTO{Day: row.Day, Count: row.Count})
	}

	return result.OK(ctx, &dto.LinkStatsDTO{
		Slug:           stats.Slug,
		ClickCount:     stats.ClickCount,
		LastAccessedAt: stats.LastAccessedAt,
		DailyClicks:    daily,
	})
}

// resolveCreator 按认证状态组装创建者：带合法 token 的按登录用户，否则匿名
func (c *LinkAPIController) resolveCreator(ctx *fiber.Ctx) (model.Creator, error) {
	if userID, ok := security.CurrentUserID(ctx); ok {
		return c.app.AuthenticatedCreator(util.Context(ctx), userID)
	}
	return model.AnonymousCreator{IP: util.ClientIP(ctx)}, nil
}

func (c *LinkAPIController) authenticatedCreator(ctx *fiber.Ctx) (model.AuthenticatedCreator, error) {
	userID, ok := security.CurrentUserID(ctx)
	if !ok {
		return model.AuthenticatedCreator{}, c.err.New("未登录", nil).NoAuth()
	}
	return c.app.AuthenticatedCreator(util.Context(ctx), userID)
}

func (c *LinkAPIController) convertLink(link *model.Link) *dto.LinkDTO {
	return &dto.LinkDTO{
		ID:             link.ID,
		Slug:           link.Slug,
		ShortURL:       base.Configures.Config.Domain + "/r/" + link.Slug,
		TargetURL:      link.TargetURL,
		HasPassword:    link.HasPassword(),
		ClickCount:     link.ClickCount,
		ExpiresAt:      link.ExpiresAt,
		LastAccessedAt: link.LastAccessedAt,
		CreatedAt:      link.CreatedAt,
	}
}
