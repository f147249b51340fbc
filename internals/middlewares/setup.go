package middlewares

import (
	"github.com/gofiber/fiber/v2"

	logger "clearproof_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the baseline middleware chain. Order matters:
// recovery first so the logger still sees panicking requests.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
