package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
)

// SalesCallRepository implements the sales call repository interface using GORM
type SalesCallRepository struct {
	db *gorm.DB
}

// NewSalesCallRepository creates a new sales call repository
func NewSalesCallRepository(db *gorm.DB) *SalesCallRepository {
	return &SalesCallRepository{
		db: db,
	}
}

// Create creates a new sales call
func (r *SalesCallRepository) Create(ctx context.Context, call *entities.SalesCall) error {
	if err := r.db.WithContext(ctx).Create(call).Error; err != nil {
		return fmt.Errorf("failed to create sales call: %w", err)
	}
	return nil
}

// FindByID finds a sales call by ID
func (r *SalesCallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.SalesCall, error) {
	var call entities.SalesCall
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&call).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSalesCallNotFound
		}
		return nil, fmt.Errorf("failed to find sales call by ID: %w", err)
	}
	return &call, nil
}

// Update updates a sales call
func (r *SalesCallRepository) Update(ctx context.Context, call *entities.SalesCall) error {
	if err := r.db.WithContext(ctx).Save(call).Error; err != nil {
		return fmt.Errorf("failed to update sales call: %w", err)
	}
	return nil
}

// Delete deletes a sales call
func (r *SalesCallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&entities.SalesCall{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete sales call: %w", err)
	}
	return nil
}

// List lists sales calls matching the given filters
func (r *SalesCallRepository) List(ctx context.Context, filters repositories.SalesCallFilters) ([]*entities.SalesCall, error) {
	q := r.db.WithContext(ctx).Model(&entities.SalesCall{})

	if filters.OrganizationID != nil {
		q = q.Where("organization_id = ?", *filters.OrganizationID)
	}
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		q = q.Offset(filters.Offset)
	}

	var calls []*entities.SalesCall
	if err := q.Order("appointment_time DESC").Find(&calls).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales calls: %w", err)
	}
	return calls, nil
}
