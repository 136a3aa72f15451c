package handlers

import (
	"time"

	"fraudwatch/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler serves the service banner and the status endpoint.
type HealthHandler struct {
	transactions repositories.TransactionRepository
	alerts       repositories.AlertRepository
	storage      string
	// persistenceErr reports the most recent durable-write failure, nil
	// when persistence is healthy. Serving continues from memory either
	// way; this is how the degradation stays visible.
	persistenceErr func() error
	started        time.Time
}

// NewHealthHandler creates a health handler. persistenceErr may be nil when
// the backend has no snapshot/durability layer to report on.
func NewHealthHandler(
	transactions repositories.TransactionRepository,
	alerts repositories.AlertRepository,
	storage string,
	persistenceErr func() error,
) *HealthHandler {
	return &HealthHandler{
		transactions:   transactions,
		alerts:         alerts,
		storage:        storage,
		persistenceErr: persistenceErr,
		started:        time.Now(),
	}
}

// Root returns the service banner and endpoint list.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Fraud Detection API",
		"status":  "running",
		"endpoints": []string{
			"/api/transactions",
			"/api/predict",
			"/api/alerts",
			"/api/stats",
			"/api/status",
		},
	})
}

// Status reports backend health, storage mode and collection sizes.
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	txCount, err := h.transactions.Count(c.Context())
	if err != nil {
		txCount = -1
	}
	alCount, err := h.alerts.Count(c.Context())
	if err != nil {
		alCount = -1
	}

	persistence := "healthy"
	if h.persistenceErr != nil {
		if err := h.persistenceErr(); err != nil {
			persistence = "degraded: " + err.Error()
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"backend":            "running",
			"storage":            h.storage,
			"persistence":        persistence,
			"transactions_count": txCount,
			"alerts_count":       alCount,
			"uptime_seconds":     int64(time.Since(h.started).Seconds()),
		},
	})
}
