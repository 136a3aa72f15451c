// Package routes defines the API routing configuration.
package routes

import (
	"time"

	"fraudwatch/internal/config"
	"fraudwatch/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Transactions *handlers.TransactionHandler
	Alerts       *handlers.AlertHandler
	Stats        *handlers.StatsHandler
	Health       *handlers.HealthHandler
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.Root)

	api := app.Group("/api")

	// The ingestion endpoint is the only hot write path; rate-limit it.
	api.Post("/predict", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("PREDICT_RATE_LIMIT", 60),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests. Please try again later.",
			})
		},
	}), h.Transactions.Predict)

	api.Get("/transactions", h.Transactions.List)
	api.Delete("/transactions", h.Transactions.ClearAll)

	api.Get("/alerts", h.Alerts.List)
	api.Put("/alerts/:id", h.Alerts.UpdateStatus)
	api.Delete("/alerts", h.Alerts.Clear)

	api.Get("/stats", h.Stats.Get)
	api.Get("/status", h.Health.Status)
}
