package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	verificationController "clearproof_backend/internals/features/verifications/controller"
)

func VerificationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := verificationController.NewVerificationController(db)

	v := r.Group("/verifications")
	v.Get("/", ctl.List)             // GET /api/verifications
	v.Get("/export", ctl.ExportCSV)  // GET /api/verifications/export
}

func VerificationPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := verificationController.NewVerificationController(db)
	r.Post("/verifications", ctl.Create) // POST /api/verifications
}
