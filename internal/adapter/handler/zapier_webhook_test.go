package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/zapier"
	"github.com/wefi-dex/otterai-backend/internal/usecase/ingest"
)

// stubIngestService returns a canned result and captures what it was called
// with
type stubIngestService struct {
	result  *ingest.Result
	payload *zapier.AnalyzePayload
	raw     []byte
}

func (s *stubIngestService) Ingest(ctx context.Context, payload *zapier.AnalyzePayload, raw []byte) *ingest.Result {
	s.payload = payload
	s.raw = raw
	return s.result
}

func newWebhookContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/external-analysis", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWebhookAnalyze_MalformedJSONRejected(t *testing.T) {
	stub := &stubIngestService{}
	h := NewWebhook(stub, zap.NewNop())

	c, rec := newWebhookContext(t, `{"transcript": `)

	require.NoError(t, h.Analyze(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.payload, "malformed payloads must not reach the pipeline")
}

func TestWebhookAnalyze_AcknowledgesValidPayload(t *testing.T) {
	callID := uuid.New()
	duration := 5400
	stub := &stubIngestService{
		result: &ingest.Result{
			SalesCallID: callID,
			Created:     true,
			Extracted: ingest.Extracted{
				CustomerName:    "Jamie Customer",
				DurationSeconds: &duration,
				Strengths:       []string{"rapport"},
			},
			SideEffects: []zapier.SideEffectResult{
				{Name: ingest.SideEffectUpsert, Success: true},
				{Name: ingest.SideEffectAnalytics, Success: true},
			},
		},
	}
	h := NewWebhook(stub, zap.NewNop())

	body := `{"transcript":"https://example.com/t","meeting_details":{"duration":"1h 30m"}}`
	c, rec := newWebhookContext(t, body)

	require.NoError(t, h.Analyze(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp zapier.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, callID.String(), resp.Data.SalesCallID)
	assert.True(t, resp.Data.SalesCallCreated)
	assert.True(t, resp.Data.DataReceived.MeetingDetails)
	require.NotNil(t, resp.Data.AnalysisSummary.DurationSeconds)
	assert.Equal(t, 5400, *resp.Data.AnalysisSummary.DurationSeconds)
	assert.Equal(t, 1, resp.Data.AnalysisSummary.StrengthsCount)
	assert.Len(t, resp.Data.SideEffects, 2)

	// The handler passes the raw body through untouched for archival
	assert.Equal(t, body, string(stub.raw))
}

func TestWebhookAnalyze_PartialFailureStillSucceeds(t *testing.T) {
	stub := &stubIngestService{
		result: &ingest.Result{
			SalesCallID: uuid.New(),
			Created:     true,
			Extracted:   ingest.Extracted{CustomerName: "Unknown Customer"},
			SideEffects: []zapier.SideEffectResult{
				{Name: ingest.SideEffectUpsert, Success: false, Error: "db down"},
				{Name: ingest.SideEffectAnalytics, Success: true},
			},
		},
	}
	h := NewWebhook(stub, zap.NewNop())

	c, rec := newWebhookContext(t, `{}`)

	require.NoError(t, h.Analyze(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp zapier.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	require.Len(t, resp.Data.SideEffects, 2)
	assert.False(t, resp.Data.SideEffects[0].Success)
	assert.Equal(t, "db down", resp.Data.SideEffects[0].Error)
}
