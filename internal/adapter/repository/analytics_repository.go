package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

// AnalyticsRepository implements the analytics repository interface using GORM
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
	}
}

// Create appends a new analytics record
func (r *AnalyticsRepository) Create(ctx context.Context, record *entities.ZapierAnalytics) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analytics record: %w", err)
	}
	return nil
}

// ListBySalesCall lists analytics records referencing a sales call
func (r *AnalyticsRepository) ListBySalesCall(ctx context.Context, salesCallID uuid.UUID) ([]*entities.ZapierAnalytics, error) {
	var records []*entities.ZapierAnalytics
	if err := r.db.WithContext(ctx).
		Where("sales_call_id = ?", salesCallID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list analytics records: %w", err)
	}
	return records, nil
}
