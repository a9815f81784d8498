// Package notifier defines the notification port (interface).
package notifier

import (
	"context"

	"github.com/Strob0t/gchat-notify/internal/domain/notification"
)

// Notifier is the port interface for delivering a validated notification.
type Notifier interface {
	// Name returns the unique identifier for this notifier (e.g. "googlechat").
	Name() string

	// Dispatch sends the request once and classifies the outcome.
	// It never retries; failures are reported through the Result.
	Dispatch(ctx context.Context, req notification.Request) notification.Result
}
