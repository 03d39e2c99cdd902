package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

// NotificationRepository defines persistence operations for notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
