package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardController "clearproof_backend/internals/features/home/controller"
)

func DashboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dashboardController.NewDashboardController(db)
	r.Get("/dashboard", ctl.Summary) // GET /api/dashboard
}
