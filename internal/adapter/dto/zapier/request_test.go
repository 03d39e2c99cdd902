package zapier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePayload_FlexibleFieldCoercion(t *testing.T) {
	// duration arrives as a number, meeting_score as a string; both must bind
	body := `{
		"meeting_details": {"duration": 2700},
		"sentiment_analysis": {"meeting_score": "8.5"}
	}`

	var p AnalyzePayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	require.NotNil(t, p.MeetingDetails)
	require.NotNil(t, p.MeetingDetails.Duration)
	assert.Equal(t, "2700", string(*p.MeetingDetails.Duration))

	require.NotNil(t, p.SentimentAnalysis)
	require.NotNil(t, p.SentimentAnalysis.MeetingScore)
	assert.Equal(t, 8.5, float64(*p.SentimentAnalysis.MeetingScore))
}

func TestAnalyzePayload_NonNumericScoreDegrades(t *testing.T) {
	// An unresolvable optional field must not reject the whole payload
	var p AnalyzePayload
	require.NoError(t, json.Unmarshal([]byte(`{"sentiment_analysis": {"meeting_score": "excellent"}}`), &p))

	require.NotNil(t, p.SentimentAnalysis)
	require.NotNil(t, p.SentimentAnalysis.MeetingScore)
	assert.False(t, p.SentimentAnalysis.MeetingScore.Valid())
}

func TestAnalyzePayload_NullFlexibleFields(t *testing.T) {
	var p AnalyzePayload
	require.NoError(t, json.Unmarshal([]byte(`{"meeting_details": {"duration": null}}`), &p))
	require.NotNil(t, p.MeetingDetails)
	if p.MeetingDetails.Duration != nil {
		assert.Equal(t, "", string(*p.MeetingDetails.Duration))
	}
}
