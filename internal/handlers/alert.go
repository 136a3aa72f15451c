package handlers

import (
	"errors"
	"fmt"

	"fraudwatch/internal/services/alerting"
	"fraudwatch/internal/services/ingestion"
	"fraudwatch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AlertHandler serves alert reads and the status workflow.
type AlertHandler struct {
	alerts *alerting.Service
	ingest *ingestion.Service
}

// NewAlertHandler creates an alert handler.
func NewAlertHandler(alerts *alerting.Service, ingest *ingestion.Service) *AlertHandler {
	return &AlertHandler{alerts: alerts, ingest: ingest}
}

// List returns all alerts, most recent first.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	alerts, err := h.alerts.List(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to list alerts")
	}
	return response.SuccessList(c, alerts, len(alerts))
}

// UpdateStatus moves an alert through the investigation workflow.
func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	alert, err := h.alerts.UpdateStatus(c.Context(), id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, alerting.ErrAlertNotFound):
			return response.NotFound(c, "Alert not found")
		case errors.Is(err, alerting.ErrInvalidStatus), errors.Is(err, alerting.ErrInvalidTransition):
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to update alert")
	}

	h.ingest.InvalidateStats(c.Context())
	return response.Success(c, alert)
}

// Clear wipes all alerts.
func (h *AlertHandler) Clear(c *fiber.Ctx) error {
	cleared, err := h.alerts.Clear(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to clear alerts")
	}

	h.ingest.InvalidateStats(c.Context())
	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Cleared %d alerts", cleared),
		"count":   0,
	})
}
