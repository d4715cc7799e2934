package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers, rateLimiter *RateLimiter) {
	app.Get("/healthz", handlers.Health)

	// Status page
	app.Get("/", handlers.Home)

	// Today's card, rendered but not published
	app.Get("/preview.png", handlers.Preview)

	// Scheduler hook: compose and publish once
	app.Post("/tick", rateLimiter.Middleware(), handlers.Tick)

	// Recent publish attempts
	app.Get("/history", handlers.History)
}

// NewApp builds the Fiber app with the standard middleware chain and routes.
func NewApp(handlers *Handlers, rateLimiter *RateLimiter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Faal Poster",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())

	SetupRoutes(app, handlers, rateLimiter)
	return app
}
