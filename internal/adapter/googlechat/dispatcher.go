// Package googlechat implements a notifier.Notifier for Google Chat incoming webhooks.
package googlechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Strob0t/gchat-notify/internal/domain/notification"
)

const (
	providerName = "googlechat"

	// DefaultTimeout bounds a single round trip when no client is supplied.
	DefaultTimeout = 15 * time.Second

	maxResponseBody = 64 << 10
)

// Dispatcher posts messages to a Google Chat webhook.
type Dispatcher struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the HTTP client. The client is copied; its redirect
// policy is always overridden. A nil client keeps the default.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// WithTimeout bounds a single round trip. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewDispatcher creates a Google Chat dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(d)
	}

	c := *d.httpClient
	c.CheckRedirect = noRedirect
	switch {
	case d.timeout > 0:
		c.Timeout = d.timeout
	case c.Timeout <= 0:
		c.Timeout = DefaultTimeout
	}
	d.httpClient = &c
	return d
}

// noRedirect makes a 3xx the final response, so one dispatch is one request.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func (d *Dispatcher) Name() string { return providerName }

// chatMessage is the Google Chat simple text message payload.
type chatMessage struct {
	Text string `json:"text"`
}

// encodePayload serializes the message as {"text": ...}. HTML escaping is
// off so markup characters reach the room as typed.
func encodePayload(text string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(chatMessage{Text: text}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Dispatch sends exactly one POST and classifies the outcome. Only a 200
// response counts as success.
func (d *Dispatcher) Dispatch(ctx context.Context, req notification.Request) notification.Result {
	body, err := encodePayload(req.Message())
	if err != nil {
		return notification.Unreachable(fmt.Errorf("googlechat marshal: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return notification.Unreachable(fmt.Errorf("googlechat request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(httpReq) //nolint:gosec // webhook URL from trusted config
	if err != nil {
		return notification.Unreachable(fmt.Errorf("googlechat send: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return notification.Succeeded(resp.StatusCode)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil && len(respBody) == 0 {
		respBody = []byte(fmt.Sprintf("<unreadable response body: %v>", err))
	}
	return notification.Rejected(resp.StatusCode, string(respBody))
}
