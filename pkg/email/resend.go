// Package email renders notification bodies and delivers them through the
// Resend HTTP transport.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Message is a fully built outbound email. Build it, send it, drop it;
// messages are never mutated after construction.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Sender delivers a message and returns the transport's response payload.
type Sender interface {
	Send(ctx context.Context, msg Message) (json.RawMessage, error)
}

// ResendClient talks to the Resend REST API. The API key is not validated
// locally; a missing or wrong key surfaces as a transport auth error.
type ResendClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewResendClient(apiKey string) *ResendClient {
	return &ResendClient{
		apiKey:   apiKey,
		endpoint: resendEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewResendClientWithEndpoint targets a non-default endpoint. Used by tests
// against a local stub server.
func NewResendClientWithEndpoint(apiKey, endpoint string) *ResendClient {
	c := NewResendClient(apiKey)
	c.endpoint = endpoint
	return c
}

// Send posts the message to Resend. Failures are surfaced immediately and
// never retried.
func (c *ResendClient) Send(ctx context.Context, msg Message) (json.RawMessage, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build transport request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transport response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Resend API error: %s", string(body))
	}

	return json.RawMessage(body), nil
}
