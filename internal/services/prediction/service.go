// Package prediction is the gateway to the fraud-risk assessment. It tries
// the remote ML model and transparently substitutes the local rule-based
// scorer when the model is unreachable.
package prediction

import (
	"context"
	"log"

	"fraudwatch/internal/models"
)

// Source records where a prediction came from. The Prediction shape is the
// same either way; the source exists for logs and metrics only.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// ModelClient is the outbound call contract to the ML service.
type ModelClient interface {
	Predict(ctx context.Context, tx *models.Transaction) (*models.Prediction, Outcome, error)
}

// FallbackScorer produces a local heuristic prediction. It never fails.
type FallbackScorer interface {
	Score(tx *models.Transaction) *models.Prediction
}

// Service resolves predictions with graceful degradation.
type Service struct {
	client   ModelClient
	fallback FallbackScorer
}

// NewService creates a prediction gateway.
func NewService(client ModelClient, fallback FallbackScorer) *Service {
	if fallback == nil {
		panic("fallback scorer is required")
	}
	return &Service{client: client, fallback: fallback}
}

// Predict returns a prediction for the transaction. Model failures of any
// kind (timeout, network, non-2xx, undecodable body) are recovered locally
// and never surfaced to the caller.
func (s *Service) Predict(ctx context.Context, tx *models.Transaction) (*models.Prediction, Source) {
	if s.client != nil {
		pred, outcome, err := s.client.Predict(ctx, tx)
		switch outcome {
		case OutcomeOK:
			return pred, SourceModel
		case OutcomeTimeout, OutcomeNetworkError, OutcomeBadStatus, OutcomeBadResponse:
			log.Printf("ml service unavailable (%s), using fallback for %s: %v",
				outcome, tx.TransactionID, err)
		}
	}

	return s.fallback.Score(tx), SourceFallback
}
