// Package service contains application services.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cfotel "github.com/Strob0t/gchat-notify/internal/adapter/otel"
	"github.com/Strob0t/gchat-notify/internal/domain/notification"
	"github.com/Strob0t/gchat-notify/internal/logger"
	"github.com/Strob0t/gchat-notify/internal/port/notifier"
	"github.com/Strob0t/gchat-notify/internal/secrets"
)

// NotificationService validates, dispatches and reports webhook posts.
type NotificationService struct {
	notifier    notifier.Notifier
	maxParallel int
	metrics     *cfotel.Metrics
	log         *slog.Logger
}

// NewNotificationService creates a NotificationService that sends through n.
// maxParallel bounds PostMany; values below 1 mean one at a time.
func NewNotificationService(n notifier.Notifier, maxParallel int) *NotificationService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &NotificationService{
		notifier:    n,
		maxParallel: maxParallel,
	}
}

// SetMetrics sets the optional metric instruments.
func (s *NotificationService) SetMetrics(m *cfotel.Metrics) {
	s.metrics = m
}

// SetLogger overrides the logger used for reporting. Defaults to slog.Default().
func (s *NotificationService) SetLogger(l *slog.Logger) {
	s.log = l
}

// Post validates the inputs and, when they are valid, sends one message.
// A validation failure is returned as a *notification.ConfigError and no
// request is made. Otherwise the dispatch result is returned with a nil error;
// callers check Result.OK.
func (s *NotificationService) Post(ctx context.Context, webhookURL, message string) (notification.Result, error) {
	req, err := notification.Validate(webhookURL, message)
	if err != nil {
		return notification.Result{}, err
	}

	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, requestID)
	}
	fingerprint := secrets.Fingerprint(req.Endpoint())

	ctx, span := cfotel.StartDispatchSpan(ctx, requestID, fingerprint)
	start := time.Now()
	res := s.notifier.Dispatch(ctx, req)
	s.metrics.Record(ctx, res, time.Since(start).Seconds())
	cfotel.EndDispatchSpan(span, res)

	s.report(ctx, requestID, fingerprint, res)
	return res, nil
}

// report renders a result to the log.
func (s *NotificationService) report(ctx context.Context, requestID, fingerprint string, res notification.Result) {
	l := s.log
	if l == nil {
		l = slog.Default()
	}
	l = l.With("request_id", requestID, "webhook", fingerprint, "provider", s.notifier.Name())

	switch res.Outcome {
	case notification.Success:
		l.InfoContext(ctx, "Successfully posted message to Google Chat", "status_code", res.StatusCode)
	case notification.HTTPFailure:
		l.ErrorContext(ctx, "Failed to post to Google Chat",
			"status_code", res.StatusCode,
			"response_body", res.ResponseBody,
		)
	default:
		l.ErrorContext(ctx, "Failed to post to Google Chat", "error", res.ErrorDetail)
	}
}

// Target is one entry of a batch post.
type Target struct {
	WebhookURL string `json:"webhook_url"`
	Message    string `json:"message"`
}

// BatchResult pairs a Target with its outcome. Err is set only for
// validation failures, in which case Result is the zero value.
type BatchResult struct {
	Target Target
	Result notification.Result
	Err    error
}

// OK reports whether the entry was validated and accepted.
func (b BatchResult) OK() bool { return b.Err == nil && b.Result.OK() }

// PostMany posts each target independently, at most maxParallel at a time.
// A failing entry never cancels the others. Results keep the input order.
func (s *NotificationService) PostMany(ctx context.Context, targets []Target) []BatchResult {
	results := make([]BatchResult, len(targets))

	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for i, t := range targets {
		g.Go(func() error {
			res, err := s.Post(ctx, t.WebhookURL, t.Message)
			results[i] = BatchResult{Target: t, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
