package dto

import "time"

// UserDTO 用户信息（对外）
type UserDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	PlanID    int64     `json:"planId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlanDTO 套餐信息（对外，供其他组件判断创建能力）
type PlanDTO struct {
	ID                        int64  `json:"id"`
	Name                      string `json:"name"`
	DailyLinkQuota            int64  `json:"dailyLinkQuota"`
	CustomSlugAllowed         bool   `json:"customSlugAllowed"`
	PasswordProtectionAllowed bool   `json:"passwordProtectionAllowed"`
	CustomExpirationAllowed   bool   `json:"customExpirationAllowed"`
	DefaultExpirationDays     int    `json:"defaultExpirationDays"`
	MaxExpirationDays         int    `json:"maxExpirationDays"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" comment:"邮箱"`
	Password string `json:"password" validate:"required,min=8,max=72" comment:"密码"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" comment:"邮箱"`
	Password string `json:"password" validate:"required" comment:"密码"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	User      *UserDTO `json:"user"`
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" comment:"邮箱"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required" comment:"重置令牌"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72" comment:"新密码"`
}
