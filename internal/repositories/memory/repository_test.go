package memory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fraudwatch/internal/models"
	"fraudwatch/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_Ordering(t *testing.T) {
	repo := NewTransactionRepository()
	ctx := context.Background()

	for _, id := range []string{"TXN1", "TXN2", "TXN3"} {
		require.NoError(t, repo.Create(ctx, &models.Transaction{TransactionID: id}))
	}

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	// Most recent first.
	assert.Equal(t, "TXN3", txs[0].TransactionID)
	assert.Equal(t, "TXN1", txs[2].TransactionID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTransactionRepository_ListReturnsCopy(t *testing.T) {
	repo := NewTransactionRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Transaction{TransactionID: "TXN1", Amount: 100}))

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	txs[0].Amount = 999

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(100), again[0].Amount)
}

func TestTransactionRepository_Clear(t *testing.T) {
	repo := NewTransactionRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Transaction{TransactionID: "TXN1"}))
	require.NoError(t, repo.Create(ctx, &models.Transaction{TransactionID: "TXN2"}))

	cleared, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAlertRepository_UpdateStatus(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Alert{ID: "A1", Status: models.AlertStatusNew}))

	updated, err := repo.UpdateStatus(ctx, "A1", func(alert *models.Alert) error {
		alert.Status = models.AlertStatusInvestigating
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusInvestigating, updated.Status)

	stored, err := repo.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusInvestigating, stored.Status)
}

func TestAlertRepository_UpdateStatus_RejectedLeavesStoreIntact(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Alert{ID: "A1", Status: models.AlertStatusNew}))

	_, err := repo.UpdateStatus(ctx, "A1", func(alert *models.Alert) error {
		alert.Status = models.AlertStatusResolved
		return assert.AnError
	})
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusNew, stored.Status)
}

func TestAlertRepository_UnknownID(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrAlertNotFound)

	_, err = repo.UpdateStatus(ctx, "missing", func(alert *models.Alert) error { return nil })
	assert.ErrorIs(t, err, repositories.ErrAlertNotFound)
}

func TestSnapshotter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	ctx := context.Background()

	txRepo := NewTransactionRepository()
	alRepo := NewAlertRepository()
	require.NoError(t, txRepo.Create(ctx, &models.Transaction{
		TransactionID: "TXN1",
		Amount:        1500,
		Prediction:    &models.Prediction{TransactionID: "TXN1", RiskScore: 42},
	}))
	require.NoError(t, alRepo.Create(ctx, &models.Alert{
		ID:     "A1",
		Status: models.AlertStatusNew,
		Reasons: models.StringList{
			"High transaction amount",
		},
	}))

	snap := NewSnapshotter(path, time.Minute, txRepo, alRepo, nil)
	snap.Start()
	snap.Stop() // flushes a final snapshot

	require.NoError(t, snap.LastError())

	// Fresh stores restored from the file.
	txRepo2 := NewTransactionRepository()
	alRepo2 := NewAlertRepository()
	snap2 := NewSnapshotter(path, time.Minute, txRepo2, alRepo2, nil)
	require.NoError(t, snap2.Load())

	txs, err := txRepo2.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "TXN1", txs[0].TransactionID)
	require.NotNil(t, txs[0].Prediction)
	assert.Equal(t, float64(42), txs[0].Prediction.RiskScore)

	alerts, err := alRepo2.List(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.StringList{"High transaction amount"}, alerts[0].Reasons)
}

func TestSnapshotter_MissingFileIsNotAnError(t *testing.T) {
	snap := NewSnapshotter(filepath.Join(t.TempDir(), "absent.json"), time.Minute,
		NewTransactionRepository(), NewAlertRepository(), nil)
	assert.NoError(t, snap.Load())
}

func TestSnapshotter_WriteFailureReported(t *testing.T) {
	var reported error
	snap := NewSnapshotter(filepath.Join(t.TempDir(), "no-such-dir", "x", "snapshot.json"),
		time.Minute, NewTransactionRepository(), NewAlertRepository(),
		func(err error) { reported = err })
	snap.Start()
	snap.Stop()

	assert.Error(t, snap.LastError())
	assert.Error(t, reported)
}
