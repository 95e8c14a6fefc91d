package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultDeliveryTimeout bounds a webhook POST so a stuck remote cannot
// stall the poll cycle.
const defaultDeliveryTimeout = 10 * time.Second

// Sink delivers one rendered notification message.
type Sink interface {
	// Deliver sends the message. Implementations must respect ctx and return
	// an error on failure; callers log and move on, never retry.
	Deliver(ctx context.Context, message string) error
}

// WebhookSink posts messages to a Discord-compatible webhook as a JSON
// payload of the form {"content": "..."}.
type WebhookSink struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewWebhookSink creates a sink for the given webhook URL. A non-positive
// timeout falls back to the default delivery timeout.
func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	return &WebhookSink{
		url:        url,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Deliver posts the message to the webhook.
func (s *WebhookSink) Deliver(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// StdoutSink writes messages to a writer with a timestamp prefix on each
// line. It is the default sink when no webhook URL is configured.
type StdoutSink struct {
	out io.Writer
	now func() time.Time
}

// NewStdoutSink creates a sink writing to out. The now function supplies
// timestamps; pass nil for time.Now.
func NewStdoutSink(out io.Writer, now func() time.Time) *StdoutSink {
	if now == nil {
		now = time.Now
	}
	return &StdoutSink{out: out, now: now}
}

// Deliver prints the message with a [2006-01-02 15:04:05] prefix.
func (s *StdoutSink) Deliver(_ context.Context, message string) error {
	stamp := s.now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(s.out, "[%s] %s\n", stamp, message); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}
