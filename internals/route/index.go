package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRoute "clearproof_backend/internals/features/billing/route"
	homeRoute "clearproof_backend/internals/features/home/route"
	moduleRoute "clearproof_backend/internals/features/modules/route"
	processRoute "clearproof_backend/internals/features/process/route"
	verificationRoute "clearproof_backend/internals/features/verifications/route"
	verifyRoute "clearproof_backend/internals/features/verify/route"
	workerRoute "clearproof_backend/internals/features/workers/route"
	"clearproof_backend/internals/features/verify/session"
	"clearproof_backend/internals/gateway"
	helperOSS "clearproof_backend/internals/helpers/oss"
	"clearproof_backend/internals/middlewares"
	authMiddleware "clearproof_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps carries everything built at bootstrap that routes need beyond
// the DB handle.
type Deps struct {
	Content gateway.ContentGateway
	Machine *session.Machine
	Store   *session.Store
	OSS     *helperOSS.OSSService
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	app.Use(middlewares.DBMiddleware(db))

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	// worker flow, module lookup, processing passthrough, submissions
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	moduleRoute.ModulePublicRoutes(public, db, deps.Content)
	processRoute.ProcessPublicRoutes(public, deps.Content)
	verificationRoute.VerificationPublicRoutes(public, db)
	verifyRoute.VerifyWorkerRoutes(public, deps.Machine, deps.Store)

	// ===================== PRIVATE (MANAGER) =====================
	log.Println("[INFO] Setting up MANAGER group...")
	private := app.Group("/api", authMiddleware.AuthMiddleware())
	moduleRoute.ModuleAdminRoutes(private, db, deps.Content, deps.OSS)
	workerRoute.WorkerAdminRoutes(private, db)
	verificationRoute.VerificationAdminRoutes(private, db)
	billingRoute.BillingAdminRoutes(private, db)
	homeRoute.DashboardAdminRoutes(private, db)
}
