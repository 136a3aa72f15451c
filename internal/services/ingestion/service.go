// Package ingestion runs the transaction pipeline: validate, predict,
// persist, and raise an alert when the policy fires.
package ingestion

import (
	"context"
	"fmt"
	"log"
	"time"

	"fraudwatch/internal/models"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/services/prediction"
	"fraudwatch/internal/validation"
)

// ValidationError rejects a malformed inbound transaction. The pipeline
// never attempts scoring on invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Predictor resolves a fraud prediction for a transaction.
type Predictor interface {
	Predict(ctx context.Context, tx *models.Transaction) (*models.Prediction, prediction.Source)
}

// AlertPolicy materializes an alert when the prediction warrants one.
type AlertPolicy interface {
	MaybeCreateAlert(ctx context.Context, tx *models.Transaction, pred *models.Prediction) (*models.Alert, error)
}

// Notifier publishes alert-created events.
type Notifier interface {
	PublishAlert(ctx context.Context, alert *models.Alert) error
}

// StatsInvalidator drops cached aggregates after a write.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// Result is what one ingestion produced.
type Result struct {
	Transaction *models.Transaction
	Prediction  *models.Prediction
	Alert       *models.Alert
	Fallback    bool
}

// Service is the ingestion pipeline.
type Service struct {
	transactions repositories.TransactionRepository
	alerts       repositories.AlertRepository
	predictor    Predictor
	policy       AlertPolicy
	notifier     Notifier
	stats        StatsInvalidator
	metrics      MetricsCollector
	now          func() time.Time
}

// NewService creates an ingestion service. notifier, stats and metrics may
// be nil.
func NewService(
	transactions repositories.TransactionRepository,
	alerts repositories.AlertRepository,
	predictor Predictor,
	policy AlertPolicy,
	notifier Notifier,
	stats StatsInvalidator,
	metrics MetricsCollector,
) *Service {
	if transactions == nil {
		panic("transaction repository is required")
	}
	if alerts == nil {
		panic("alert repository is required")
	}
	if predictor == nil {
		panic("predictor is required")
	}
	if policy == nil {
		panic("alert policy is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &Service{
		transactions: transactions,
		alerts:       alerts,
		predictor:    predictor,
		policy:       policy,
		notifier:     notifier,
		stats:        stats,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Ingest runs the full pipeline for one transaction. The transaction is
// stored before its alert, so readers never observe an alert whose
// transaction is missing.
func (s *Service) Ingest(ctx context.Context, tx *models.Transaction) (*Result, error) {
	started := s.now()

	s.fillDefaults(tx)

	v := validation.New()
	v.Transaction(tx)
	if !v.Valid() {
		s.metrics.RecordRejected()
		return nil, &ValidationError{Message: v.Message()}
	}

	pred, source := s.predictor.Predict(ctx, tx)
	fallback := source == prediction.SourceFallback

	tx.Prediction = pred
	tx.CreatedAt = s.now()
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	alert, err := s.policy.MaybeCreateAlert(ctx, tx, pred)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	if alert != nil {
		s.metrics.RecordAlertCreated()
		if s.notifier != nil {
			if err := s.notifier.PublishAlert(ctx, alert); err != nil {
				log.Printf("alert notification failed for %s: %v", alert.ID, err)
			}
		}
	}

	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
	s.metrics.RecordIngestion(s.now().Sub(started), pred.RiskScore, fallback)

	return &Result{
		Transaction: tx,
		Prediction:  pred,
		Alert:       alert,
		Fallback:    fallback,
	}, nil
}

// ListTransactions returns all transactions, most recent first.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.List(ctx)
}

// ClearAll wipes transactions and alerts. Administrative only.
func (s *Service) ClearAll(ctx context.Context) (transactions, alerts int64, err error) {
	transactions, err = s.transactions.Clear(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to clear transactions: %w", err)
	}
	alerts, err = s.alerts.Clear(ctx)
	if err != nil {
		return transactions, 0, fmt.Errorf("failed to clear alerts: %w", err)
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
	return transactions, alerts, nil
}

// InvalidateStats is exposed for write paths outside the pipeline (alert
// status updates, bulk clears).
func (s *Service) InvalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

func (s *Service) fillDefaults(tx *models.Transaction) {
	if tx.TransactionID == "" {
		tx.TransactionID = fmt.Sprintf("TXN%d", s.now().UnixMilli())
	}
	if tx.TransactionTime == "" {
		tx.TransactionTime = s.now().UTC().Format(time.RFC3339)
	}
}
