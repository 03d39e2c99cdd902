package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

// SalesCallFilters narrows sales call listings
type SalesCallFilters struct {
	OrganizationID *uuid.UUID
	UserID         *uuid.UUID
	Status         *entities.SalesCallStatus
	Limit          int
	Offset         int
}

// SalesCallRepository defines persistence operations for sales calls
type SalesCallRepository interface {
	Create(ctx context.Context, call *entities.SalesCall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.SalesCall, error)
	Update(ctx context.Context, call *entities.SalesCall) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters SalesCallFilters) ([]*entities.SalesCall, error)
}
