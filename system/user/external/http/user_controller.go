package http

import (
	"astrolink/base"
	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/result"
	"astrolink/pkg/core/security"
	"astrolink/pkg/core/util"
	"astrolink/system/user/api/dto"
	internalapp "astrolink/system/user/internal/app"
	"astrolink/system/user/internal/model"
	"astrolink/utils"

	"github.com/gofiber/fiber/v2"
)

// UserController 用户认证控制器
type UserController struct {
	app *internalapp.App
	err *errorc.ErrorBuilder
	log *logger.Log
}

// NewUserController 创建用户认证控制器
func NewUserController(app *internalapp.App) *UserController {
	return &UserController{
		app: app,
		err: errorc.NewErrorBuilder("UserController"),
		log: logger.GetLogger().WithEntryName("UserController"),
	}
}

// RegisterRoutes 注册路由
func (c *UserController) RegisterRoutes(api fiber.Router) {
	auth := api.Group("/auth")

	auth.Post("/register", c.Register)
	auth.Post("/login", c.Login)
	auth.Post("/forgot-password", c.ForgotPassword)
	auth.Post("/reset-password", c.ResetPassword)

	auth.Get("/profile", base.UserAuth.RequireAuth(), c.Profile)
}

// Register 注册新用户
func (c *UserController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.err.New("解析请求参数失败", err).ValidWithCtx()
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return c.err.New(errMsg, err).ValidWithCtx()
	}

	user, err := c.app.UserService.Register(util.Context(ctx), req.Email, req.Password)
	if err != nil {
		return err
	}

	return result.OK(ctx, convertUser(user))
}

// Login 用户登录，签发 JWT
func (c *UserController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.err.New("解析请求参数失败", err).ValidWithCtx()
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return c.err.New(errMsg, err).ValidWithCtx()
	}

	user, err := c.app.UserService.ValidateLogin(util.Context(ctx), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, expiresAt, err := base.UserAuth.CreateToken(user.ID, user.Email)
	if err != nil {
		return c.err.New("签发令牌失败", err)
	}

	return result.OK(ctx, &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      convertUser(user),
	})
}

// Profile 查询当前用户信息
func (c *UserController) Profile(ctx *fiber.Ctx) error {
	userID, ok := security.CurrentUserID(ctx)
	if !ok {
		return c.err.New("未登录", nil).NoAuth()
	}

	user, err := c.app.UserService.FindById(util.Context(ctx), userID)
	if err != nil {
		return err
	}

	return result.OK(ctx, convertUser(user))
}

// ForgotPassword 发起找回密码流程
func (c *UserController) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.err.New("解析请求参数失败", err).ValidWithCtx()
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return c.err.New(errMsg, err).ValidWithCtx()
	}

	ip := util.ClientIP(ctx)
	if err := c.app.UserService.ForgotPassword(util.Context(ctx), req.Email, ip); err != nil {
		return err
	}

	return result.OK(ctx, fiber.Map{"message": "如果该邮箱已注册，重置说明将发送至邮箱"})
}

// ResetPassword 使用重置令牌设置新密码
func (c *UserController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.err.New("解析请求参数失败", err).ValidWithCtx()
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return c.err.New(errMsg, err).ValidWithCtx()
	}

	if err := c.app.UserService.ResetPassword(util.Context(ctx), req.Token, req.NewPassword); err != nil {
		return err
	}

	return result.OK(ctx, fiber.Map{"message": "密码已重置"})
}

func convertUser(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		PlanID:    user.PlanID,
		CreatedAt: user.CreatedAt,
	}
}
