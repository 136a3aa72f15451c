package handlers

import (
	"fraudwatch/internal/services/stats"
	"fraudwatch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	stats *stats.Service
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(statsSvc *stats.Service) *StatsHandler {
	return &StatsHandler{stats: statsSvc}
}

// Get returns the dashboard stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	result, err := h.stats.Compute(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to compute stats")
	}
	return response.Success(c, result)
}
