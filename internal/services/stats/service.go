// Package stats derives the dashboard aggregates from the transaction and
// alert stores.
package stats

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"fraudwatch/internal/models"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/repositories/cache"
)

const (
	cacheKey = "stats:dashboard"
	cacheTTL = 5 * time.Minute
)

const highRiskThreshold = 70

// Service computes dashboard stats by a full scan of both stores. The
// result is cached and the cache is invalidated on every write, so readers
// never see stale numbers.
type Service struct {
	transactions repositories.TransactionRepository
	alerts       repositories.AlertRepository
	cache        cache.Service
}

// NewService creates a stats service. cache may be nil.
func NewService(transactions repositories.TransactionRepository, alerts repositories.AlertRepository, cacheSvc cache.Service) *Service {
	if transactions == nil || alerts == nil {
		panic("repositories are required")
	}
	return &Service{
		transactions: transactions,
		alerts:       alerts,
		cache:        cacheSvc,
	}
}

// Compute returns the current dashboard stats.
func (s *Service) Compute(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		} else if err != nil {
			log.Printf("stats cache read failed: %v", err)
		}
	}

	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	alerts, err := s.alerts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	result := compute(txs, alerts)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
			log.Printf("stats cache write failed: %v", err)
		}
	}
	return result, nil
}

// Invalidate drops the cached stats. Called by the write path after every
// mutation.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Printf("stats cache invalidation failed: %v", err)
	}
}

func compute(txs []models.Transaction, alerts []models.Alert) *models.DashboardStats {
	stats := &models.DashboardStats{
		TotalTransactions: len(txs),
	}

	var totalAmount float64
	for _, tx := range txs {
		totalAmount += tx.Amount
		if tx.Prediction == nil {
			continue
		}
		if tx.Prediction.IsFraud {
			stats.FraudTransactions++
		}
		if tx.Prediction.RiskScore > highRiskThreshold {
			stats.HighRiskTransactions++
		}
	}

	stats.TotalAmount = round2(totalAmount)
	if stats.TotalTransactions > 0 {
		stats.FraudRate = round2(float64(stats.FraudTransactions) / float64(stats.TotalTransactions) * 100)
	}

	for _, alert := range alerts {
		if alert.Status == models.AlertStatusNew {
			stats.ActiveAlerts++
		}
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
