package ingest

import (
	"strings"
	"time"

	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/zapier"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

// FallbackCustomerName is stored when no payload shape carries a name
const FallbackCustomerName = "Unknown Customer"

// timestampLayouts are tried in order when parsing meeting timestamps
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Extracted holds the normalized values resolved from one payload. Nothing
// downstream of the extractor branches on payload shape.
type Extracted struct {
	CustomerName    string
	CustomerEmail   *string
	CalendarGuests  *string
	AppointmentTime time.Time
	StartedAt       *time.Time
	EndedAt         *time.Time
	DurationSeconds *int
	Sentiment       *entities.Sentiment
	Score           *float64
	Strengths       []string
	Weaknesses      []string
	TranscriptURL   *string
	RecordingURL    *string
	MeetingID       *string
}

// Extract resolves canonical values from the union of payload shapes.
// Customer identity prefers user_info over the legacy user_identification
// block; meeting timing prefers meeting_details, falling back to now for
// the appointment time. Both shapes stay accepted indefinitely because the
// external system changed its payload format over time.
func Extract(p *zapier.AnalyzePayload, now time.Time) Extracted {
	out := Extracted{
		CustomerName:    FallbackCustomerName,
		AppointmentTime: now,
		TranscriptURL:   nonEmpty(p.Transcript),
		RecordingURL:    nonEmpty(p.CapturedDataURL),
		MeetingID:       nonEmpty(p.MeetingID),
	}

	// Customer identity: user_info wins over user_identification
	identity := p.UserInfo
	if identity == nil {
		identity = p.UserIdentification
	}
	if identity != nil {
		if name := nonEmpty(identity.UserName); name != nil {
			out.CustomerName = *name
		}
		out.CustomerEmail = nonEmpty(identity.UserEmail)
		out.CalendarGuests = nonEmpty(identity.CalendarGuests)
	}

	// Meeting timing
	if md := p.MeetingDetails; md != nil {
		if md.Duration != nil {
			out.DurationSeconds = ParseDurationSeconds(string(*md.Duration))
		}
		out.StartedAt = parseTimestamp(md.StartDatetime)
		out.EndedAt = parseTimestamp(md.EndDatetime)
		if out.StartedAt != nil {
			out.AppointmentTime = *out.StartedAt
		}
	}

	// Scoring
	if sa := p.SentimentAnalysis; sa != nil {
		if sa.SentimentCategory != nil {
			out.Sentiment = MapSentiment(*sa.SentimentCategory)
		}
		if sa.MeetingScore != nil && sa.MeetingScore.Valid() {
			score := float64(*sa.MeetingScore)
			out.Score = &score
		}
		out.Strengths = splitList(sa.Strengths)
		out.Weaknesses = splitList(sa.Weaknesses)
	}

	return out
}

// parseTimestamp tries the known timestamp layouts; unparseable values
// degrade to absent rather than erroring.
func parseTimestamp(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// splitList splits a comma-separated string into trimmed non-empty items
func splitList(raw *string) []string {
	if raw == nil {
		return nil
	}
	var items []string
	for _, part := range strings.Split(*raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
