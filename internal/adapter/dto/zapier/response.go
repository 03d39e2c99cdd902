package zapier

import "time"

// DataReceived summarizes which payload blocks were present on ingestion
type DataReceived struct {
	Transcript        bool `json:"transcript"`
	Recording         bool `json:"recording"`
	SentimentAnalysis bool `json:"sentiment_analysis"`
	UserInfo          bool `json:"user_info"`
	MeetingDetails    bool `json:"meeting_details"`
}

// AnalysisSummary summarizes the normalized analysis values
type AnalysisSummary struct {
	Sentiment       *string  `json:"sentiment,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	StrengthsCount  int      `json:"strengthsCount"`
	WeaknessesCount int      `json:"weaknessesCount"`
}

// SideEffectResult reports the outcome of one named side effect attempt
type SideEffectResult struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AnalyzeResponseData is the data block of a successful acknowledgment
type AnalyzeResponseData struct {
	ProcessedAt      time.Time          `json:"processedAt"`
	SalesCallID      string             `json:"salesCallId"`
	OrganizationID   *string            `json:"organizationId"`
	MeetingID        *string            `json:"meeting_id"`
	SalesCallCreated bool               `json:"salesCallCreated"`
	DataReceived     DataReceived       `json:"dataReceived"`
	AnalysisSummary  AnalysisSummary    `json:"analysisSummary"`
	SideEffects      []SideEffectResult `json:"sideEffects,omitempty"`
}

// AnalyzeResponse is the acknowledgment envelope returned to the caller
type AnalyzeResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *AnalyzeResponseData `json:"data,omitempty"`
}
