package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SalesCallStatus represents the lifecycle status of a sales call
type SalesCallStatus string

const (
	SalesCallStatusScheduled SalesCallStatus = "scheduled"
	SalesCallStatusCompleted SalesCallStatus = "completed"
	SalesCallStatusCancelled SalesCallStatus = "cancelled"
	SalesCallStatusMissed    SalesCallStatus = "missed"
)

// Sentiment is the closed customer-sentiment enum
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// MaxPerformanceScore is the storage precision ceiling for performance_score
// (NUMERIC(3,2)); larger values are clamped before persistence.
const MaxPerformanceScore = 9.99

// SalesCall represents one analyzed customer interaction
type SalesCall struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	UserID         *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`

	// Customer identity
	CustomerName  string  `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerEmail *string `json:"customer_email,omitempty" gorm:"type:varchar(255)"`

	// Timing
	AppointmentTime time.Time  `json:"appointment_time" gorm:"not null;default:now()"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Duration        *int       `json:"duration,omitempty"` // seconds

	// Lifecycle and outcome
	Status     SalesCallStatus `json:"status" gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Outcome    *string         `json:"outcome,omitempty" gorm:"type:varchar(50)"`
	SaleAmount *float64        `json:"sale_amount,omitempty" gorm:"type:numeric(12,2)"`

	// Scoring
	PerformanceScore  *float64       `json:"performance_score,omitempty" gorm:"type:numeric(3,2)"`
	CustomerSentiment *Sentiment     `json:"customer_sentiment,omitempty" gorm:"type:varchar(20)"`
	Strengths         datatypes.JSON `json:"strengths,omitempty" gorm:"type:jsonb"`
	Weaknesses        datatypes.JSON `json:"weaknesses,omitempty" gorm:"type:jsonb"`

	// External references and raw analysis payload
	MeetingID     *string        `json:"meeting_id,omitempty" gorm:"type:varchar(255);index"`
	TranscriptURL *string        `json:"transcript_url,omitempty" gorm:"type:text"`
	RecordingURL  *string        `json:"recording_url,omitempty" gorm:"type:text"`
	Analysis      datatypes.JSON `json:"analysis,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (SalesCall) TableName() string {
	return "sales_calls"
}

// NewSalesCall creates a new sales call with default values
func NewSalesCall(customerName string) *SalesCall {
	return &SalesCall{
		ID:              uuid.New(),
		CustomerName:    customerName,
		AppointmentTime: time.Now(),
		Status:          SalesCallStatusScheduled,
	}
}

// SetPerformanceScore stores the score clamped to the column precision
func (s *SalesCall) SetPerformanceScore(score float64) {
	if score > MaxPerformanceScore {
		score = MaxPerformanceScore
	}
	s.PerformanceScore = &score
}
