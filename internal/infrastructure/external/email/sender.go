package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/wefi-dex/otterai-backend/pkg/config"
)

// Sender is a minimal transactional email client (SendGrid v3 mail/send)
type Sender struct {
	apiKey      string
	baseURL     string
	fromAddress string
	fromName    string
	client      *http.Client
}

// NewSender creates an email sender using the provided config.
// Pass a nil config to fall back to environment variables.
func NewSender(cfg *config.EmailConfig) *Sender {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("EMAIL_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = "https://api.sendgrid.com"
	}

	s := &Sender{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	if cfg != nil {
		s.fromAddress = cfg.FromAddress
		s.fromName = cfg.FromName
	}
	return s
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To []address `json:"to"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// Send delivers a plain-text email to a single recipient
func (s *Sender) Send(ctx context.Context, toEmail, subject, body string) error {
	payload := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: toEmail}}}},
		From:             address{Email: s.fromAddress, Name: s.fromName},
		Subject:          subject,
		Content:          []content{{Type: "text/plain", Value: body}},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v3/mail/send", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}
