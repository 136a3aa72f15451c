package repositories

import (
	"context"
	"errors"
	"fmt"

	"fraudwatch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type alertRepo struct {
	db *gorm.DB
}

// NewAlertRepository creates a GORM-backed alert repository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *models.Alert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *alertRepo) List(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	var alert models.Alert
	err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *alertRepo) UpdateStatus(ctx context.Context, id string, fn func(alert *models.Alert) error) (*models.Alert, error) {
	var updated *models.Alert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alert models.Alert
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&alert, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}

		if err := fn(&alert); err != nil {
			return err
		}

		if err := tx.Save(&alert).Error; err != nil {
			return err
		}
		updated = &alert
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *alertRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Alert{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return count, nil
}

func (r *alertRepo) Clear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Alert{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear alerts: %w", res.Error)
	}
	return res.RowsAffected, nil
}
