package ingest

import (
	"strings"

	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
)

var (
	positiveKeywords = []string{"positive", "impressive", "good"}
	negativeKeywords = []string{"negative", "bad", "ugly"}
)

// MapSentiment maps a free-text sentiment category onto the closed sentiment
// enum. Positive keywords take precedence over negative ones, so a category
// matching both families resolves to positive. Empty input yields nil.
// This is a substring heuristic, not a classifier.
func MapSentiment(category string) *entities.Sentiment {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return nil
	}

	for _, kw := range positiveKeywords {
		if strings.Contains(c, kw) {
			s := entities.SentimentPositive
			return &s
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(c, kw) {
			s := entities.SentimentNegative
			return &s
		}
	}

	s := entities.SentimentNeutral
	return &s
}
