package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Announcer posts public messages to the community Discord server
type Announcer interface {
	Announce(ctx context.Context, content string) error
}

// WebhookClient posts announcements through a Discord webhook
type WebhookClient struct {
	webhookURL string
	username   string
	httpClient *http.Client
}

// MockAnnouncer logs announcements instead of delivering them, used when no
// webhook is configured
type MockAnnouncer struct{}

// NewWebhookClient creates a new WebhookClient
func NewWebhookClient(webhookURL, username string) *WebhookClient {
	return &WebhookClient{
		webhookURL: webhookURL,
		username:   username,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewMockAnnouncer creates a new MockAnnouncer
func NewMockAnnouncer() *MockAnnouncer {
	return &MockAnnouncer{}
}

// Announce posts the content to the webhook
func (c *WebhookClient) Announce(ctx context.Context, content string) error {
	payload := map[string]interface{}{
		"content":  content,
		"username": c.username,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Announce logs the content
func (m *MockAnnouncer) Announce(_ context.Context, content string) error {
	log.Printf("[Mock Announcer] %s", content)
	return nil
}
