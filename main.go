package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"clearproof_backend/internals/configs"
	database "clearproof_backend/internals/databases"
	billingService "clearproof_backend/internals/features/billing/service"
	verifyScheduler "clearproof_backend/internals/features/verify/scheduler"
	"clearproof_backend/internals/features/verify/session"
	"clearproof_backend/internals/gateway"
	"clearproof_backend/internals/gateway/smartsuite"
	verifyService "clearproof_backend/internals/features/verify/service"
	helperOSS "clearproof_backend/internals/helpers/oss"
	middlewares "clearproof_backend/internals/middlewares"
	routes "clearproof_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing (light observability)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 120*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// billing
	billingService.InitMidtrans(configs.MidtransServerKey)

	// content processing gateway (AI service); the token provider is
	// injected here once, never set globally
	contentGW := gateway.NewHTTPGateway(configs.ProcessAPIURL, gateway.StaticToken(configs.ProcessAPIKey))

	// worker verification flow
	gwService := verifyService.NewGatewayService(database.DB, contentGW, configs.QuestionCount)
	if configs.ModuleSource == "smartsuite" {
		gwService.SmartSuite = smartsuite.NewClient(configs.SmartSuiteAPIURL, configs.SmartSuiteAPIKey, configs.SmartSuiteTable)
		log.Println("[INFO] module source: smartsuite")
	}
	machine := session.NewMachine(gwService,
		session.WithPolicy(session.ParsePolicy(configs.SubmissionFailurePolicy)))
	store := session.NewStore(time.Duration(configs.SessionTTLMinutes) * time.Minute)
	reaper := verifyScheduler.StartSessionReaper(store)
	defer reaper.Stop()

	// object storage for uploaded documents (optional)
	var oss *helperOSS.OSSService
	if configs.OSSEndpoint != "" {
		var err error
		oss, err = helperOSS.NewOSSServiceFromEnv("clearproof")
		if err != nil {
			log.Printf("[ERROR] OSS init failed, uploads keep content only: %v", err)
		}
	}

	routes.SetupRoutes(app, database.DB, routes.Deps{
		Content: contentGW,
		Machine: machine,
		Store:   store,
		OSS:     oss,
	})

	port := configs.GetEnvOrDefault("PORT", "8080")

	// graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("[INFO] Shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Printf("[INFO] ClearProof API listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("[ERROR] server stopped: %v", err)
	}
}
