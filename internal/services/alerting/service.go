// Package alerting decides when a scored transaction becomes a persisted
// alert and owns the alert investigation workflow.
package alerting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fraudwatch/internal/models"
	"fraudwatch/internal/repositories"

	"github.com/google/uuid"
)

// An alert is raised when the 0-100 risk score crosses this threshold, or
// when the model flags fraud outright regardless of score.
const riskScoreThreshold = 70

const defaultReason = "High risk transaction detected"

// validTransitions is the alert workflow: new alerts move into
// investigation or get dismissed, investigations resolve, and closed
// alerts can be reopened.
var validTransitions = map[string][]string{
	models.AlertStatusNew:           {models.AlertStatusInvestigating, models.AlertStatusFalsePositive},
	models.AlertStatusInvestigating: {models.AlertStatusResolved},
	models.AlertStatusResolved:      {models.AlertStatusNew},
	models.AlertStatusFalsePositive: {models.AlertStatusNew},
}

// Service applies the alert policy and status transitions.
type Service struct {
	repo repositories.AlertRepository
	now  func() time.Time
}

// NewService creates an alerting service.
func NewService(repo repositories.AlertRepository) *Service {
	if repo == nil {
		panic("alert repository is required")
	}
	return &Service{repo: repo, now: time.Now}
}

// ShouldAlert reports whether the prediction crosses the alert threshold.
func ShouldAlert(pred *models.Prediction) bool {
	return pred.RiskScore > riskScoreThreshold || pred.IsFraud
}

// MaybeCreateAlert creates and stores an alert when the prediction crosses
// the threshold, at most once per ingested transaction. Returns nil with no
// error when the policy does not fire.
func (s *Service) MaybeCreateAlert(ctx context.Context, tx *models.Transaction, pred *models.Prediction) (*models.Alert, error) {
	if !ShouldAlert(pred) {
		return nil, nil
	}

	reasons := pred.Reasons
	if len(reasons) == 0 {
		reasons = []string{defaultReason}
	}

	alert := &models.Alert{
		ID:            "ALERT-" + uuid.NewString(),
		TransactionID: tx.TransactionID,
		RiskScore:     pred.RiskScore,
		Amount:        tx.Amount,
		Merchant:      tx.Merchant,
		Category:      tx.Category,
		City:          tx.City,
		Country:       tx.Country,
		Device:        tx.Device,
		Status:        models.AlertStatusNew,
		Reasons:       models.StringList(reasons),
		Prediction:    pred,
		Timestamp:     s.now(),
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to store alert: %w", err)
	}
	return alert, nil
}

// UpdateStatus moves an alert through the workflow. Unknown statuses and
// disallowed transitions are rejected with no partial mutation.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Alert, error) {
	if !models.ValidAlertStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	alert, err := s.repo.UpdateStatus(ctx, id, func(alert *models.Alert) error {
		if !transitionAllowed(alert.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, alert.Status, status)
		}
		now := s.now()
		alert.Status = status
		alert.UpdatedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlertNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return alert, nil
}

// List returns all alerts, most recent first.
func (s *Service) List(ctx context.Context) ([]models.Alert, error) {
	return s.repo.List(ctx)
}

// Clear wipes all alerts and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	return s.repo.Clear(ctx)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
