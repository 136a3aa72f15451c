package memory

import (
	"context"
	"sync"

	"fraudwatch/internal/models"
	"fraudwatch/internal/repositories"
)

// AlertRepository keeps alerts in a most-recent-first slice. Status updates
// run under the write lock so concurrent updates to the same alert cannot
// lose writes.
type AlertRepository struct {
	mu     sync.RWMutex
	alerts []models.Alert
}

// NewAlertRepository creates an empty in-memory alert store.
func NewAlertRepository() *AlertRepository {
	return &AlertRepository{}
}

func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alerts = append([]models.Alert{*alert}, r.alerts...)
	return nil
}

func (r *AlertRepository) List(ctx context.Context) ([]models.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out, nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.alerts {
		if r.alerts[i].ID == id {
			alert := r.alerts[i]
			return &alert, nil
		}
	}
	return nil, repositories.ErrAlertNotFound
}

func (r *AlertRepository) UpdateStatus(ctx context.Context, id string, fn func(alert *models.Alert) error) (*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alerts {
		if r.alerts[i].ID != id {
			continue
		}

		// Mutate a copy so a rejected transition leaves the store intact.
		candidate := r.alerts[i]
		if err := fn(&candidate); err != nil {
			return nil, err
		}
		r.alerts[i] = candidate
		updated := candidate
		return &updated, nil
	}
	return nil, repositories.ErrAlertNotFound
}

func (r *AlertRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.alerts)), nil
}

func (r *AlertRepository) Clear(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := int64(len(r.alerts))
	r.alerts = nil
	return cleared, nil
}

func (r *AlertRepository) restore(alerts []models.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = alerts
}

func (r *AlertRepository) snapshot() []models.Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}
