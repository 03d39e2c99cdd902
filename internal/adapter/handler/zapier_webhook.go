package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/errors"
	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/zapier"
	"github.com/wefi-dex/otterai-backend/internal/usecase/ingest"
)

// Webhook receives external analysis payloads and acknowledges them.
// Malformed JSON is the only condition that produces a client error; once a
// payload binds, the response is a success acknowledgment regardless of how
// much of it could be persisted.
type Webhook struct {
	ingest ingest.Service
	logger *zap.Logger
}

// NewWebhook creates the webhook handler
func NewWebhook(svc ingest.Service, logger *zap.Logger) *Webhook {
	return &Webhook{ingest: svc, logger: logger}
}

// Analyze handles POST /v1/webhooks/external-analysis
func (h *Webhook) Analyze(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	var payload zapier.AnalyzePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("webhook payload failed to bind",
			zap.String("request_id", getRequestID(c)),
			zap.Error(err),
		)
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	result := h.ingest.Ingest(c.Request().Context(), &payload, raw)

	h.logger.Info("webhook payload ingested",
		zap.String("request_id", getRequestID(c)),
		zap.String("sales_call_id", result.SalesCallID.String()),
		zap.Bool("created", result.Created),
	)

	return c.JSON(http.StatusOK, buildAnalyzeResponse(&payload, result))
}

// buildAnalyzeResponse assembles the acknowledgment from the ingestion
// outcome. The data block reports which payload pieces were present and what
// they normalized to, so the caller can verify its mapping configuration.
func buildAnalyzeResponse(payload *zapier.AnalyzePayload, result *ingest.Result) zapier.AnalyzeResponse {
	extracted := result.Extracted

	var orgID *string
	if result.OrganizationID != nil {
		s := result.OrganizationID.String()
		orgID = &s
	}

	var sentiment *string
	if extracted.Sentiment != nil {
		s := string(*extracted.Sentiment)
		sentiment = &s
	}

	data := zapier.AnalyzeResponseData{
		ProcessedAt:      time.Now().UTC(),
		SalesCallID:      result.SalesCallID.String(),
		OrganizationID:   orgID,
		MeetingID:        extracted.MeetingID,
		SalesCallCreated: result.Created,
		DataReceived: zapier.DataReceived{
			Transcript:        extracted.TranscriptURL != nil,
			Recording:         extracted.RecordingURL != nil,
			SentimentAnalysis: payload.SentimentAnalysis != nil,
			UserInfo:          payload.UserInfo != nil || payload.UserIdentification != nil,
			MeetingDetails:    payload.MeetingDetails != nil,
		},
		AnalysisSummary: zapier.AnalysisSummary{
			Sentiment:       sentiment,
			Score:           extracted.Score,
			DurationSeconds: extracted.DurationSeconds,
			StrengthsCount:  len(extracted.Strengths),
			WeaknessesCount: len(extracted.Weaknesses),
		},
		SideEffects: result.SideEffects,
	}

	return zapier.AnalyzeResponse{
		Success: true,
		Message: "Analysis data received and processed",
		Data:    &data,
	}
}
