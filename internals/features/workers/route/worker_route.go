package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	workerController "clearproof_backend/internals/features/workers/controller"
)

func WorkerAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := workerController.NewWorkerController(db)

	workers := r.Group("/workers")
	workers.Get("/", ctl.List)        // GET  /api/workers
	workers.Post("/", ctl.Create)     // POST /api/workers
	workers.Get("/:id", ctl.GetByID)  // GET  /api/workers/:id
}
