package route

import (
	"github.com/gofiber/fiber/v2"

	processController "clearproof_backend/internals/features/process/controller"
	"clearproof_backend/internals/gateway"
	"clearproof_backend/internals/middlewares"
)

func ProcessPublicRoutes(r fiber.Router, gw gateway.ContentGateway) {
	ctl := processController.NewProcessController(gw)

	process := r.Group("/process", middlewares.ProcessRateLimiter())
	process.Post("/translate", ctl.Translate) // POST /api/process/translate
	process.Post("/questions", ctl.Questions) // POST /api/process/questions
}
