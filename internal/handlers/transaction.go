package handlers

import (
	"errors"

	"fraudwatch/internal/models"
	"fraudwatch/internal/services/ingestion"
	"fraudwatch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler serves the ingestion pipeline and transaction reads.
type TransactionHandler struct {
	ingest *ingestion.Service
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler(ingest *ingestion.Service) *TransactionHandler {
	return &TransactionHandler{ingest: ingest}
}

// Predict ingests a transaction and returns its prediction. Prediction
// failures are invisible here: the gateway degrades to the fallback scorer.
func (h *TransactionHandler) Predict(c *fiber.Ctx) error {
	var tx models.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	res, err := h.ingest.Ingest(c.Context(), &tx)
	if err != nil {
		var verr *ingestion.ValidationError
		if errors.As(err, &verr) {
			return response.BadRequest(c, verr.Message)
		}
		return response.ServerError(c, "Failed to process transaction")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"data":        res.Prediction,
		"transaction": res.Transaction,
	})
}

// List returns all transactions, most recent first.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	txs, err := h.ingest.ListTransactions(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to list transactions")
	}
	return response.SuccessList(c, txs, len(txs))
}

// ClearAll wipes transactions and alerts.
func (h *TransactionHandler) ClearAll(c *fiber.Ctx) error {
	txCleared, alCleared, err := h.ingest.ClearAll(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to clear transactions")
	}
	return c.JSON(fiber.Map{
		"success":             true,
		"clearedTransactions": txCleared,
		"clearedAlerts":       alCleared,
	})
}
