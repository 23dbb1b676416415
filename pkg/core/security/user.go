package security

import (
	"strings"
	"time"

	errorc "astrolink/pkg/core/err"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type UserAuth struct {
	jwtClient *JwtClient
}

const (
	UserKey = "user"
)

type UserClaims struct {
	jwt.RegisteredClaims
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
}

func NewUserAuth(secret []byte, expireTime time.Duration) *UserAuth {
	return &UserAuth{
		jwtClient: NewJwtClient(secret, expireTime),
	}
}

// CreateToken 创建用户token
func (a *UserAuth) CreateToken(userID int64, email string) (string, int64, error) {
	claims := &UserClaims{
		ID:    userID,
		Email: email,
	}
	return a.jwtClient.CreateUserToken(claims)
}

// OptionalAuth 可选校验，有token则验证并保存ID
func (a *UserAuth) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth != "" && strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")
			claims, err := a.jwtClient.ParseUserToken(token)
			if err == nil {
				a.jwtClient.SaveUserToContext(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireAuth 必须通过校验，并保存ID
func (a *UserAuth) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			return errorc.New("authorization header is required", nil).NoAuth()
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		claims, err := a.jwtClient.ParseUserToken(token)
		if err != nil {
			return errorc.New("invalid token", err).NoAuth()
		}

		a.jwtClient.SaveUserToContext(c, claims)
		return c.Next()
	}
}

// CurrentUserID 从请求上下文中取出已认证的用户ID，未认证时返回 false
func CurrentUserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals("user_id").(int64)
	return id, ok
}
