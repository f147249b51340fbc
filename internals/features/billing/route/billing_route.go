package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingController "clearproof_backend/internals/features/billing/controller"
)

func BillingAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := billingController.NewBillingController(db)

	billing := r.Group("/billing")
	billing.Get("/subscription", ctl.GetSubscription) // GET  /api/billing/subscription
	billing.Post("/checkout", ctl.CreateCheckout)     // POST /api/billing/checkout
	billing.Post("/portal", ctl.CreatePortal)         // POST /api/billing/portal
}
