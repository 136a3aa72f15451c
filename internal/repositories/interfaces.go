// Package repositories provides the data access layer. Two backends exist
// behind the same interfaces: a GORM/Postgres implementation for durable
// deployments and an in-memory implementation with optional JSON snapshots.
package repositories

import (
	"context"
	"errors"

	"fraudwatch/internal/models"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlertNotFound       = errors.New("alert not found")
)

// TransactionRepository stores ingested transactions. The collection is
// append-mostly: records are never mutated individually, only bulk-cleared.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	// List returns transactions most-recent-first.
	List(ctx context.Context) ([]models.Transaction, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

// AlertRepository stores alerts. Status updates are the only per-record
// mutation and must be applied atomically.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	// List returns alerts most-recent-first.
	List(ctx context.Context) ([]models.Alert, error)
	GetByID(ctx context.Context, id string) (*models.Alert, error)
	// UpdateStatus applies fn to the stored alert under the repository's
	// write lock (or a DB transaction) and persists the result. fn
	// returning an error aborts the update with no partial mutation.
	UpdateStatus(ctx context.Context, id string, fn func(alert *models.Alert) error) (*models.Alert, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) (int64, error)
}
