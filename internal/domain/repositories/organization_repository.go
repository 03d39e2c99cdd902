package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

// OrganizationRepository defines persistence operations for organizations
type OrganizationRepository interface {
	Create(ctx context.Context, org *entities.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, org *entities.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*entities.Organization, error)
}
