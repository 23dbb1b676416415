package start

import (
	"astrolink/pkg/core/fiber_handle"

	"github.com/gofiber/fiber/v2"
	recover2 "github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
)

func GetApp() *fiber.App {
	app := fiber.New(
		fiber.Config{
			BodyLimit:    10 * 1024 * 1024,
			ErrorHandler: fiber_handle.ErrHandler,
			JSONEncoder:  jsoniter.Marshal,
			JSONDecoder:  jsoniter.Unmarshal,
		})
	app.Use(fiber_handle.Cors())
	app.Use(recover2.New(recover2.Config{
		EnableStackTrace: true,
	}))
	app.Use(fiber_handle.HealthCheck(fiber_handle.HealthCheckConfig{Path: "/health"}))
	return app
}
