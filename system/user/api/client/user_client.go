package client

import (
	"context"

	errorc "astrolink/pkg/core/err"
	"astrolink/system/user/api/dto"
	"astrolink/system/user/internal/app"
	"astrolink/system/user/internal/model"
)

// UserClient 用户组件对外客户端（供其他组件调用）
type UserClient struct {
	app *app.App
	err *errorc.ErrorBuilder
}

// NewUserClient 创建用户客户端实例
func NewUserClient(app *app.App) *UserClient {
	return &UserClient{
		app: app,
		err: errorc.NewErrorBuilder("UserClient"),
	}
}

// GetUserByID 根据 ID 查询用户
func (c *UserClient) GetUserByID(ctx context.Context, id int64) (*dto.UserDTO, error) {
	user, err := c.app.UserService.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	return convertUserToDTO(user), nil
}

// GetUserPlan 查询用户所属套餐（短链接组件据此判断创建能力）
func (c *UserClient) GetUserPlan(ctx context.Context, userID int64) (*dto.PlanDTO, error) {
	user, err := c.app.UserService.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan, err := c.app.UserService.FindPlan(ctx, user)
	if err != nil {
		return nil, err
	}
	return convertPlanToDTO(plan), nil
}

func convertUserToDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		PlanID:    user.PlanID,
		CreatedAt: user.CreatedAt,
	}
}

func convertPlanToDTO(plan *model.Plan) *dto.PlanDTO {
	return &dto.PlanDTO{
		ID:                        plan.ID,
		Name:                      plan.Name,
		DailyLinkQuota:            plan.DailyLinkQuota,
		CustomSlugAllowed:         plan.CustomSlugAllowed,
		PasswordProtectionAllowed: plan.PasswordProtectionAllowed,
		CustomExpirationAllowed:   plan.CustomExpirationAllowed,
		DefaultExpirationDays:     plan.DefaultExpirationDays,
		MaxExpirationDays:         plan.MaxExpirationDays,
	}
}
