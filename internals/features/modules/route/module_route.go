package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	moduleController "clearproof_backend/internals/features/modules/controller"
	"clearproof_backend/internals/gateway"
	helperOSS "clearproof_backend/internals/helpers/oss"
)

// ModuleAdminRoutes mounts the authenticated manager surface.
func ModuleAdminRoutes(r fiber.Router, db *gorm.DB, gw gateway.ContentGateway, oss *helperOSS.OSSService) {
	ctl := moduleController.NewModuleController(db, gw, oss)

	modules := r.Group("/modules")
	modules.Get("/", ctl.List)          // GET    /api/modules
	modules.Post("/", ctl.Create)       // POST   /api/modules
	modules.Post("/upload", ctl.Upload) // POST   /api/modules/upload
	modules.Get("/:id/qr", ctl.QR)      // GET    /api/modules/:id/qr
	modules.Patch("/:id", ctl.Patch)    // PATCH  /api/modules/:id
	modules.Delete("/:id", ctl.Delete)  // DELETE /api/modules/:id

	// AI transformation trigger lives under /process like the rest of
	// the processing surface
	r.Post("/process/transform/:id", ctl.Transform)
}

// ModulePublicRoutes mounts the worker-facing module lookup.
func ModulePublicRoutes(r fiber.Router, db *gorm.DB, gw gateway.ContentGateway) {
	ctl := moduleController.NewModuleController(db, gw, nil)
	r.Get("/modules/:id", ctl.GetPublic) // GET /api/modules/:id
}
