package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsRetention is how long an ingested payload is retained before an
// external cleanup job may remove it. Enforcement is not done here.
const AnalyticsRetention = 30 * 24 * time.Hour

// ZapierAnalytics is an append-only audit record capturing the full raw
// payload of one webhook ingestion, with a weak reference to the sales call
// it was normalized into.
type ZapierAnalytics struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	SalesCallID    *uuid.UUID `json:"sales_call_id,omitempty" gorm:"type:uuid;index"`

	Source  string         `json:"source" gorm:"type:varchar(50);not null;default:'zapier'"`
	Payload datatypes.JSON `json:"payload" gorm:"type:jsonb;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ZapierAnalytics) TableName() string {
	return "zapier_analytics"
}

// NewZapierAnalytics creates an analytics record with the default retention
func NewZapierAnalytics(payload []byte) *ZapierAnalytics {
	return &ZapierAnalytics{
		ID:        uuid.New(),
		Source:    "zapier",
		Payload:   payload,
		ExpiresAt: time.Now().Add(AnalyticsRetention),
	}
}
