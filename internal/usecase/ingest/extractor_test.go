package ingest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/zapier"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

func strPtr(s string) *string { return &s }

func flexStrPtr(s string) *zapier.FlexString {
	f := zapier.FlexString(s)
	return &f
}

func flexFloatPtr(v float64) *zapier.FlexFloat {
	f := zapier.FlexFloat(v)
	return &f
}

func TestExtract_EmptyPayload(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	got := Extract(&zapier.AnalyzePayload{}, now)

	assert.Equal(t, FallbackCustomerName, got.CustomerName)
	assert.Equal(t, now, got.AppointmentTime)
	assert.Nil(t, got.CustomerEmail)
	assert.Nil(t, got.StartedAt)
	assert.Nil(t, got.DurationSeconds)
	assert.Nil(t, got.Sentiment)
	assert.Nil(t, got.Score)
}

func TestExtract_UserInfoWinsOverIdentification(t *testing.T) {
	payload := &zapier.AnalyzePayload{
		UserInfo: &zapier.UserInfo{
			UserName:  strPtr("Current Name"),
			UserEmail: strPtr("current@example.com"),
		},
		UserIdentification: &zapier.UserInfo{
			UserName:  strPtr("Legacy Name"),
			UserEmail: strPtr("legacy@example.com"),
		},
	}

	got := Extract(payload, time.Now())

	assert.Equal(t, "Current Name", got.CustomerName)
	require.NotNil(t, got.CustomerEmail)
	assert.Equal(t, "current@example.com", *got.CustomerEmail)
}

func TestExtract_LegacyIdentificationFallback(t *testing.T) {
	payload := &zapier.AnalyzePayload{
		UserIdentification: &zapier.UserInfo{
			UserName: strPtr("Legacy Name"),
		},
	}

	got := Extract(payload, time.Now())

	assert.Equal(t, "Legacy Name", got.CustomerName)
}

func TestExtract_BlankNameFallsBack(t *testing.T) {
	payload := &zapier.AnalyzePayload{
		UserInfo: &zapier.UserInfo{
			UserName:  strPtr("   "),
			UserEmail: strPtr("someone@example.com"),
		},
	}

	got := Extract(payload, time.Now())

	assert.Equal(t, FallbackCustomerName, got.CustomerName)
	require.NotNil(t, got.CustomerEmail)
	assert.Equal(t, "someone@example.com", *got.CustomerEmail)
}

func TestExtract_MeetingTiming(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := &zapier.AnalyzePayload{
		MeetingDetails: &zapier.MeetingDetails{
			Duration:      flexStrPtr("1h 30m"),
			StartDatetime: strPtr("2025-02-28T14:00:00Z"),
			EndDatetime:   strPtr("2025-02-28T15:30:00Z"),
		},
	}

	got := Extract(payload, now)

	require.NotNil(t, got.DurationSeconds)
	assert.Equal(t, 5400, *got.DurationSeconds)
	require.NotNil(t, got.StartedAt)
	assert.Equal(t, time.Date(2025, 2, 28, 14, 0, 0, 0, time.UTC), *got.StartedAt)
	require.NotNil(t, got.EndedAt)
	// Appointment time follows the meeting start, not the ingestion time
	assert.Equal(t, *got.StartedAt, got.AppointmentTime)
}

func TestExtract_UnparseableTimestampDegrades(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := &zapier.AnalyzePayload{
		MeetingDetails: &zapier.MeetingDetails{
			StartDatetime: strPtr("yesterday afternoon"),
		},
	}

	got := Extract(payload, now)

	assert.Nil(t, got.StartedAt)
	assert.Equal(t, now, got.AppointmentTime)
}

func TestExtract_SentimentAnalysis(t *testing.T) {
	payload := &zapier.AnalyzePayload{
		SentimentAnalysis: &zapier.SentimentAnalysis{
			SentimentCategory: strPtr("Impressive"),
			Strengths:         strPtr("rapport, discovery questions , closing"),
			Weaknesses:        strPtr("pricing objection"),
			MeetingScore:      flexFloatPtr(8.5),
		},
	}

	got := Extract(payload, time.Now())

	require.NotNil(t, got.Sentiment)
	assert.Equal(t, entities.SentimentPositive, *got.Sentiment)
	require.NotNil(t, got.Score)
	assert.Equal(t, 8.5, *got.Score)
	assert.Equal(t, []string{"rapport", "discovery questions", "closing"}, got.Strengths)
	assert.Equal(t, []string{"pricing objection"}, got.Weaknesses)
}

func TestExtract_InvalidScoreDegrades(t *testing.T) {
	payload := &zapier.AnalyzePayload{
		SentimentAnalysis: &zapier.SentimentAnalysis{
			SentimentCategory: strPtr("Positive"),
			MeetingScore:      flexFloatPtr(math.NaN()),
		},
	}

	got := Extract(payload, time.Now())

	assert.Nil(t, got.Score)
	require.NotNil(t, got.Sentiment)
}

func TestExtract_References(t *testing.T) {
	payload := &zapier.AnalyzePayload{
		Transcript:      strPtr("https://example.com/transcript"),
		CapturedDataURL: strPtr("https://example.com/recording"),
		MeetingID:       strPtr("meeting-42"),
	}

	got := Extract(payload, time.Now())

	require.NotNil(t, got.TranscriptURL)
	assert.Equal(t, "https://example.com/transcript", *got.TranscriptURL)
	require.NotNil(t, got.RecordingURL)
	require.NotNil(t, got.MeetingID)
	assert.Equal(t, "meeting-42", *got.MeetingID)
}
