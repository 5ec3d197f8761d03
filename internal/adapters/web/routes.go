package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies before JSON decoding. The optimize use
// case applies its own, smaller payload limit.
const maxBodyBytes = 1 << 20

// NewApp builds the fiber app with the middleware stack and every route.
func NewApp(handlers *Handlers, scrapeLimiter *RateLimiter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ListingPilot",
		ErrorHandler: ErrorHandler,
		BodyLimit:    maxBodyBytes,
		ReadTimeout:  30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())

	SetupRoutes(app, handlers, scrapeLimiter)
	return app
}

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers, scrapeLimiter *RateLimiter) {
	app.Get("/", handlers.Home)
	app.Get("/platforms", handlers.PlatformsPage)
	app.Get("/healthz", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", PrincipalMiddleware())
	api.Get("/platforms", handlers.Platforms)
	api.Post("/optimize", handlers.Optimize)
	api.Post("/scrape", scrapeLimiter.Middleware(), handlers.Scrape)
	api.Post("/analyze-image", handlers.AnalyzeImage)
	api.Post("/score", handlers.Score)
	api.Get("/history", handlers.History)
	api.Get("/usage", handlers.Usage)
}
