package zapier

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString unmarshals either a JSON string or a JSON number into a string.
// Zapier forwards some numeric fields as strings and vice versa depending on
// how the zap was configured, so the boundary has to accept both.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// FlexFloat unmarshals either a JSON number or a numeric JSON string. A
// non-numeric string degrades to an invalid value (checked via Valid)
// instead of failing the bind; an unresolvable optional field must never
// reject the whole payload.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = FlexFloat(math.NaN())
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = FlexFloat(math.NaN())
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// Valid reports whether a numeric value was actually resolved
func (f FlexFloat) Valid() bool {
	return !math.IsNaN(float64(f))
}

// UserInfo carries customer identity fields. The external system has sent
// this block as user_info (current) and user_identification (legacy); both
// shapes share these fields.
type UserInfo struct {
	UserEmail      *string `json:"user_email,omitempty"`
	UserName       *string `json:"user_name,omitempty"`
	CalendarGuests *string `json:"calendar_guests,omitempty"`
}

// SentimentAnalysis carries scoring fields from the analysis provider
type SentimentAnalysis struct {
	SentimentCategory *string    `json:"sentiment_category,omitempty"`
	Strengths         *string    `json:"strengths,omitempty"`  // comma separated
	Weaknesses        *string    `json:"weaknesses,omitempty"` // comma separated
	MeetingScore      *FlexFloat `json:"meeting_score,omitempty"`
}

// MeetingDetails carries timing fields from the analysis provider
type MeetingDetails struct {
	Duration      *FlexString `json:"duration,omitempty"`
	StartDatetime *string     `json:"start_datetime,omitempty"`
	EndDatetime   *string     `json:"end_datetime,omitempty"`
}

// AnalyzePayload is the union of payload shapes accepted by the OtterAI
// analysis webhook. Every field is optional; extraction applies documented
// fallbacks instead of rejecting partial payloads.
type AnalyzePayload struct {
	Transcript         *string            `json:"transcript,omitempty"`
	CapturedDataURL    *string            `json:"captured_data_url,omitempty"`
	SentimentAnalysis  *SentimentAnalysis `json:"sentiment_analysis,omitempty"`
	UserIdentification *UserInfo          `json:"user_identification,omitempty"`
	UserInfo           *UserInfo          `json:"user_info,omitempty"`
	MeetingDetails     *MeetingDetails    `json:"meeting_details,omitempty"`
	MeetingID          *string            `json:"meeting_id,omitempty"`
	SalesCallID        *string            `json:"salesCallId,omitempty"`
	OrganizationID     *string            `json:"organizationId,omitempty"`
}
