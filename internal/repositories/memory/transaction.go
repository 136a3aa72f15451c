// Package memory provides in-memory implementations of the repository
// interfaces, with an optional periodic JSON snapshot for crash recovery.
package memory

import (
	"context"
	"sync"

	"fraudwatch/internal/models"
	"fraudwatch/internal/repositories"
)

var (
	_ repositories.TransactionRepository = (*TransactionRepository)(nil)
	_ repositories.AlertRepository       = (*AlertRepository)(nil)
)

// TransactionRepository keeps transactions in a most-recent-first slice.
type TransactionRepository struct {
	mu     sync.RWMutex
	txs    []models.Transaction
	nextID uint
}

// NewTransactionRepository creates an empty in-memory transaction store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{nextID: 1}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = r.nextID
	r.nextID++
	r.txs = append([]models.Transaction{*tx}, r.txs...)
	return nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.txs)), nil
}

func (r *TransactionRepository) Clear(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := int64(len(r.txs))
	r.txs = nil
	return cleared, nil
}

// restore replaces the store contents, used by the snapshotter on startup.
func (r *TransactionRepository) restore(txs []models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.txs = txs
	r.nextID = 1
	for _, tx := range txs {
		if tx.ID >= r.nextID {
			r.nextID = tx.ID + 1
		}
	}
}

func (r *TransactionRepository) snapshot() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transaction, len(r.txs))
	copy(out, r.txs)
	return out
}
