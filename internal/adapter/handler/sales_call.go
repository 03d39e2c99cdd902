package handler

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/errors"
	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/salescall"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
	"github.com/wefi-dex/otterai-backend/internal/infrastructure/external/otterai"
	"github.com/wefi-dex/otterai-backend/pkg/config"
)

// Transcriber submits recordings for analysis and reports job status
type Transcriber interface {
	SubmitSpeech(ctx context.Context, recordingURL, webhookURL string, metadata map[string]string) (string, error)
	GetSpeech(ctx context.Context, speechID string) (*otterai.SpeechStatus, error)
}

// SalesCall handles sales call HTTP requests
type SalesCall struct {
	repo          repositories.SalesCallRepository
	analyticsRepo repositories.AnalyticsRepository
	otter         Transcriber
	cfg           *config.Config
	logger        *zap.Logger
}

// NewSalesCallHandler creates a new sales call handler
func NewSalesCallHandler(
	repo repositories.SalesCallRepository,
	analyticsRepo repositories.AnalyticsRepository,
	otter Transcriber,
	cfg *config.Config,
	logger *zap.Logger,
) *SalesCall {
	return &SalesCall{
		repo:          repo,
		analyticsRepo: analyticsRepo,
		otter:         otter,
		cfg:           cfg,
		logger:        logger,
	}
}

// Create handles POST /sales-calls
func (h *SalesCall) Create(c echo.Context) error {
	var req salescall.CreateSalesCallRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	call := entities.NewSalesCall(req.CustomerName)
	call.CustomerEmail = req.CustomerEmail
	call.OrganizationID = parseUUIDRef(req.OrganizationID)
	call.UserID = parseUUIDRef(req.UserID)
	call.Outcome = req.Outcome
	call.SaleAmount = req.SaleAmount
	if req.AppointmentTime != nil {
		call.AppointmentTime = *req.AppointmentTime
	}
	if req.Status != nil {
		call.Status = entities.SalesCallStatus(*req.Status)
	}

	if err := h.repo.Create(c.Request().Context(), call); err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("create sales call", err))
	}

	return HandleSuccess(h.logger, c, call)
}

// Get handles GET /sales-calls/:id
func (h *SalesCall) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid sales call id"))
	}

	call, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSalesCallNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("sales call"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("find sales call", err))
	}

	return HandleSuccess(h.logger, c, call)
}

// List handles GET /sales-calls
func (h *SalesCall) List(c echo.Context) error {
	var req salescall.ListSalesCallsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if req.Limit == 0 {
		req.Limit = 50
	}

	filters := repositories.SalesCallFilters{
		OrganizationID: parseUUIDRef(req.OrganizationID),
		UserID:         parseUUIDRef(req.UserID),
		Limit:          req.Limit,
		Offset:         req.Offset,
	}
	if req.Status != nil {
		status := entities.SalesCallStatus(*req.Status)
		filters.Status = &status
	}

	calls, err := h.repo.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list sales calls", err))
	}

	return HandleSuccess(h.logger, c, calls)
}

// Update handles PATCH /sales-calls/:id
func (h *SalesCall) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid sales call id"))
	}

	var req salescall.UpdateSalesCallRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	call, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSalesCallNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("sales call"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("find sales call", err))
	}

	if req.CustomerName != nil {
		call.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		call.CustomerEmail = req.CustomerEmail
	}
	if req.UserID != nil {
		call.UserID = parseUUIDRef(req.UserID)
	}
	if req.AppointmentTime != nil {
		call.AppointmentTime = *req.AppointmentTime
	}
	if req.Status != nil {
		call.Status = entities.SalesCallStatus(*req.Status)
	}
	if req.Outcome != nil {
		call.Outcome = req.Outcome
	}
	if req.SaleAmount != nil {
		call.SaleAmount = req.SaleAmount
	}

	if err := h.repo.Update(c.Request().Context(), call); err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("update sales call", err))
	}

	return HandleSuccess(h.logger, c, call)
}

// Delete handles DELETE /sales-calls/:id
func (h *SalesCall) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid sales call id"))
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		if stdErrors.Is(err, entities.ErrSalesCallNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("sales call"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("delete sales call", err))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// Transcribe handles POST /sales-calls/:id/transcribe. It submits the
// stored recording to the transcription service; the analysis arrives later
// through the ingestion webhook.
func (h *SalesCall) Transcribe(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid sales call id"))
	}

	call, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSalesCallNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("sales call"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("find sales call", err))
	}

	if call.RecordingURL == nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("sales call has no recording to transcribe"))
	}

	webhookURL := h.cfg.OtterAI.WebhookBaseURL + "/v1/webhooks/external-analysis"
	metadata := map[string]string{"salesCallId": call.ID.String()}
	if call.OrganizationID != nil {
		metadata["organizationId"] = call.OrganizationID.String()
	}

	speechID, err := h.otter.SubmitSpeech(c.Request().Context(), *call.RecordingURL, webhookURL, metadata)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrExternalAPIFailed("otterai", err))
	}

	h.logger.Info("recording submitted for transcription",
		zap.String("sales_call_id", call.ID.String()),
		zap.String("speech_id", speechID),
	)

	return HandleSuccess(h.logger, c, map[string]string{
		"sales_call_id": call.ID.String(),
		"speech_id":     speechID,
	})
}

// TranscriptionStatus handles GET /sales-calls/transcriptions/:speechId
func (h *SalesCall) TranscriptionStatus(c echo.Context) error {
	speechID := c.Param("speechId")
	if speechID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing speech id"))
	}

	status, err := h.otter.GetSpeech(c.Request().Context(), speechID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrExternalAPIFailed("otterai", err))
	}

	return HandleSuccess(h.logger, c, status)
}

// Analytics handles GET /sales-calls/:id/analytics, listing the raw ingestion
// payloads recorded for a call
func (h *SalesCall) Analytics(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid sales call id"))
	}

	records, err := h.analyticsRepo.ListBySalesCall(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list analytics records", err))
	}

	return HandleSuccess(h.logger, c, records)
}

// parseUUIDRef parses an optional uuid string, returning nil when absent or
// unparseable
func parseUUIDRef(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}
