// Package notification defines the request and result types for posting a
// message to a Google Chat incoming webhook.
package notification

import (
	"errors"
	"fmt"

	"github.com/Strob0t/gchat-notify/internal/domain"
)

// Configuration keys as the user supplies them.
const (
	KeyWebhookURL = "webhook_url"
	KeyMessage    = "message"
)

var (
	// ErrMissingEndpoint is matched by a ConfigError with Kind MissingEndpoint.
	ErrMissingEndpoint = errors.New("missing webhook_url")
	// ErrMissingMessage is matched by a ConfigError with Kind MissingMessage.
	ErrMissingMessage = errors.New("missing message")
)

// ConfigErrorKind classifies a pre-flight configuration failure.
type ConfigErrorKind string

const (
	MissingEndpoint ConfigErrorKind = "missing_endpoint"
	MissingMessage  ConfigErrorKind = "missing_message"
)

// ConfigError is returned by Validate. Its message names the offending key
// and shows the syntax to supply it.
type ConfigError struct {
	Kind ConfigErrorKind
	Key  string
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case MissingEndpoint:
		return "You must provide a webhook_url in order to post to Google Chat, pass using `webhook_url: 'url'`"
	case MissingMessage:
		return "You must provide a message to post to Google Chat, pass using `message: 'my message'`"
	default:
		return fmt.Sprintf("invalid configuration for %q", e.Key)
	}
}

// Is lets errors.Is match both the kind sentinel and domain.ErrValidation.
func (e *ConfigError) Is(target error) bool {
	switch target {
	case domain.ErrValidation:
		return true
	case ErrMissingEndpoint:
		return e.Kind == MissingEndpoint
	case ErrMissingMessage:
		return e.Kind == MissingMessage
	}
	return false
}

// Request is a validated notification. The zero value is not valid; build one
// with Validate.
type Request struct {
	endpoint string
	message  string
}

// Endpoint returns the webhook URL exactly as supplied.
func (r Request) Endpoint() string { return r.endpoint }

// Message returns the message text exactly as supplied.
func (r Request) Message() string { return r.message }

// Validate checks both inputs before any network activity. The endpoint is
// checked first so that when both are missing the endpoint error wins.
// Values are carried through unchanged.
func Validate(endpoint, message string) (Request, error) {
	if endpoint == "" {
		return Request{}, &ConfigError{Kind: MissingEndpoint, Key: KeyWebhookURL}
	}
	if message == "" {
		return Request{}, &ConfigError{Kind: MissingMessage, Key: KeyMessage}
	}
	return Request{endpoint: endpoint, message: message}, nil
}
