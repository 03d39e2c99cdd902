package otterai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/wefi-dex/otterai-backend/pkg/config"
)

// Client is a minimal OtterAI speech API client
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates an OtterAI client using the provided config.
// Pass a nil config to fall back to environment variables.
func NewClient(cfg *config.OtterAIConfig) *Client {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OTTERAI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OTTERAI_API_URL")
		if base == "" {
			base = "https://otter.ai/forward/api/v1"
		}
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SubmitRequest is the payload for speech submission
type SubmitRequest struct {
	AudioURL   string            `json:"audio_url"`
	WebhookURL string            `json:"webhook_url,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SubmitResponse is the minimal response shape
type SubmitResponse struct {
	SpeechID string `json:"speech_id"`
	Status   string `json:"status"`
}

// SubmitSpeech asks OtterAI to analyze an external recording URL and returns
// the speech job id. Transient failures are retried with exponential backoff.
func (c *Client) SubmitSpeech(ctx context.Context, recordingURL, webhookURL string, metadata map[string]string) (string, error) {
	payload := SubmitRequest{
		AudioURL:   recordingURL,
		WebhookURL: webhookURL,
		Metadata:   metadata,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var speechID string
	submitFn := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/speeches", bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("otterai returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("otterai returned status %d", resp.StatusCode))
		}

		var sr SubmitResponse
		if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
			return backoff.Permanent(err)
		}
		speechID = sr.SpeechID
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return speechID, nil
}

// SpeechStatus is the minimal status shape for a submitted speech
type SpeechStatus struct {
	SpeechID      string `json:"speech_id"`
	Status        string `json:"status"`
	TranscriptURL string `json:"transcript_url,omitempty"`
}

// GetSpeech fetches the current status of a speech job
func (c *Client) GetSpeech(ctx context.Context, speechID string) (*SpeechStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/speeches/"+speechID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("otterai returned status %d", resp.StatusCode)
	}

	var status SpeechStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
