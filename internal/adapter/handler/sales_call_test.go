package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
	"github.com/wefi-dex/otterai-backend/internal/infrastructure/external/otterai"
	"github.com/wefi-dex/otterai-backend/pkg/config"
)

// stubSalesCallRepo serves a single call by id
type stubSalesCallRepo struct {
	call *entities.SalesCall
}

func (s *stubSalesCallRepo) Create(ctx context.Context, call *entities.SalesCall) error { return nil }

func (s *stubSalesCallRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.SalesCall, error) {
	if s.call != nil && s.call.ID == id {
		return s.call, nil
	}
	return nil, entities.ErrSalesCallNotFound
}

func (s *stubSalesCallRepo) Update(ctx context.Context, call *entities.SalesCall) error { return nil }
func (s *stubSalesCallRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }

func (s *stubSalesCallRepo) List(ctx context.Context, filters repositories.SalesCallFilters) ([]*entities.SalesCall, error) {
	return nil, nil
}

// stubTranscriber records submissions and serves a canned status
type stubTranscriber struct {
	submittedURL     string
	submittedWebhook string
	metadata         map[string]string
	speechID         string
	status           *otterai.SpeechStatus
	statusQueried    string
}

func (s *stubTranscriber) SubmitSpeech(ctx context.Context, recordingURL, webhookURL string, metadata map[string]string) (string, error) {
	s.submittedURL = recordingURL
	s.submittedWebhook = webhookURL
	s.metadata = metadata
	return s.speechID, nil
}

func (s *stubTranscriber) GetSpeech(ctx context.Context, speechID string) (*otterai.SpeechStatus, error) {
	s.statusQueried = speechID
	return s.status, nil
}

func newSalesCallTestHandler(repo repositories.SalesCallRepository, otter Transcriber) *SalesCall {
	cfg := &config.Config{}
	cfg.OtterAI.WebhookBaseURL = "https://api.example.com"
	return NewSalesCallHandler(repo, nil, otter, cfg, zap.NewNop())
}

func TestSalesCallTranscribe_SubmitsRecording(t *testing.T) {
	recordingURL := "https://example.com/recording.mp4"
	call := entities.NewSalesCall("Jamie Customer")
	call.RecordingURL = &recordingURL

	otter := &stubTranscriber{speechID: "speech-123"}
	h := newSalesCallTestHandler(&stubSalesCallRepo{call: call}, otter)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(call.ID.String())

	require.NoError(t, h.Transcribe(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, recordingURL, otter.submittedURL)
	assert.Equal(t, "https://api.example.com/v1/webhooks/external-analysis", otter.submittedWebhook)
	assert.Equal(t, call.ID.String(), otter.metadata["salesCallId"])

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "speech-123", resp.Data["speech_id"])
}

func TestSalesCallTranscribe_NoRecordingRejected(t *testing.T) {
	call := entities.NewSalesCall("Jamie Customer")

	otter := &stubTranscriber{}
	h := newSalesCallTestHandler(&stubSalesCallRepo{call: call}, otter)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(call.ID.String())

	require.NoError(t, h.Transcribe(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, otter.submittedURL)
}

func TestSalesCallTranscriptionStatus(t *testing.T) {
	otter := &stubTranscriber{
		status: &otterai.SpeechStatus{SpeechID: "speech-123", Status: "processing"},
	}
	h := newSalesCallTestHandler(&stubSalesCallRepo{}, otter)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("speechId")
	c.SetParamValues("speech-123")

	require.NoError(t, h.TranscriptionStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "speech-123", otter.statusQueried)

	var resp struct {
		Data otterai.SpeechStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "processing", resp.Data.Status)
}
