package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, organizationID *uuid.UUID, limit, offset int) ([]*entities.User, error)
}
