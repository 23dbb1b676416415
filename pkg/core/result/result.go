package result

import (
	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/util"

	"github.com/gofiber/fiber/v2"
)

func OK(c *fiber.Ctx, v interface{}) error {
	return c.Status(200).JSON(fiber.Map{"status": 200, "data": v})
}

func BadRequestNormal(c *fiber.Ctx, message string, err error) error {
	return errorc.New(message, err).WithTraceID(util.Context(c))
}

func BadRequest(c *fiber.Ctx, err error) error {
	return err
}

func Once(c *fiber.Ctx, v interface{}, err error) error {
	if err == nil {
		return OK(c, v)
	}
	return BadRequest(c, err)
}
