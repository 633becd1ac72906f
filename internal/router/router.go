package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quraniq/quraniq-api/internal/config"
	"github.com/quraniq/quraniq-api/internal/handler"
	"github.com/quraniq/quraniq-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	ChatHandler    *handler.ChatHandler
	InquiryHandler *handler.InquiryHandler
	JourneyHandler *handler.JourneyHandler
	JWTMiddleware  fiber.Handler
	RateLimiter    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.ChatHandler != nil {
		chat := api.Group("/chat", jwtMiddleware)
		if deps.RateLimiter != nil {
			chat.Use(deps.RateLimiter)
		}
		deps.ChatHandler.Register(chat)
	}

	if deps.InquiryHandler != nil {
		deps.InquiryHandler.Register(api.Group("/inquiries", jwtMiddleware))
	}

	if deps.JourneyHandler != nil {
		deps.JourneyHandler.Register(api.Group("/journeys", jwtMiddleware))
	}
}
