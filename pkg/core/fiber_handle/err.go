package fiber_handle

import (
	"errors"

	errorc "astrolink/pkg/core/err"

	"github.com/gofiber/fiber/v2"
)

func ErrHandler(ctx *fiber.Ctx, err error) error {

	var e *fiber.Error
	if errors.As(err, &e) {
		return ctx.Status(e.Code).SendString(e.Message)
	}

	cError := errorc.ParseError(err)

	status := cError.Code
	if status < 400 || status > 599 {
		status = fiber.StatusInternalServerError
	}

	body := fiber.Map{"status": cError.Code, "error": cError.Name, "message": cError.Msg}
	// 密码保护的短链在未携带密码时返回该标记，前端据此弹出密码输入框
	if cError.ErrorCode == errorc.ErrorCodePasswordRequired {
		body["passwordRequired"] = true
	}

	return ctx.Status(status).JSON(body)
}
