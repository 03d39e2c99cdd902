package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

// AnalyticsRepository defines persistence operations for ingestion audit
// records. The table is append-only; expiry cleanup is owned by an external
// job, not this service.
type AnalyticsRepository interface {
	Create(ctx context.Context, record *entities.ZapierAnalytics) error
	ListBySalesCall(ctx context.Context, salesCallID uuid.UUID) ([]*entities.ZapierAnalytics, error)
}
