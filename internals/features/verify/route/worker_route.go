package route

import (
	"github.com/gofiber/fiber/v2"

	verifyController "clearproof_backend/internals/features/verify/controller"
	"clearproof_backend/internals/features/verify/session"
	"clearproof_backend/internals/middlewares"
)

// VerifyWorkerRoutes mounts the public worker flow. One endpoint per
// transition; no backward route exists by construction.
func VerifyWorkerRoutes(r fiber.Router, machine *session.Machine, store *session.Store) {
	ctl := verifyController.NewVerifyController(machine, store)

	verify := r.Group("/verify")
	verify.Post("/:module_id/start", middlewares.VerifyStartRateLimiter(), ctl.Start)

	sess := verify.Group("/session/:session_id")
	sess.Get("/", ctl.State)
	sess.Post("/language", ctl.SelectLanguage)
	sess.Post("/info", ctl.SubmitInfo)
	sess.Post("/read", ctl.AcknowledgeRead)
	sess.Post("/answer", ctl.Answer)
	sess.Post("/next", ctl.Next)
}
