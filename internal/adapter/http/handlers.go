package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/Strob0t/gchat-notify/internal/domain"
	"github.com/Strob0t/gchat-notify/internal/domain/notification"
	"github.com/Strob0t/gchat-notify/internal/service"
)

// maxBatchSize caps the number of messages in one batch request.
const maxBatchSize = 100

// Poster sends messages. Implemented by service.NotificationService.
type Poster interface {
	Post(ctx context.Context, webhookURL, message string) (notification.Result, error)
	PostMany(ctx context.Context, targets []service.Target) []service.BatchResult
}

// Handlers holds the relay's dependencies.
type Handlers struct {
	Notifications Poster
	// DefaultWebhook supplies the webhook URL when the request omits one.
	DefaultWebhook func() string
	// AllowedWebhookHosts lists the hosts a request may name in webhook_url.
	// Empty means only the default webhook is used.
	AllowedWebhookHosts []string
}

type postMessageRequest struct {
	WebhookURL string `json:"webhook_url"`
	Message    string `json:"message"`
}

type batchRequest struct {
	Messages []postMessageRequest `json:"messages"`
}

type batchEntry struct {
	notification.Result
	Error string `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchEntry `json:"results"`
}

var errWebhookNotAllowed = errors.New("webhook_url host is not allowed")

// webhookAllowed reports whether a caller-supplied webhook URL may be used.
// Only https URLs whose host is on the allowlist pass.
func (h *Handlers) webhookAllowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return false
	}
	return slices.ContainsFunc(h.AllowedWebhookHosts, func(allowed string) bool {
		return strings.EqualFold(allowed, u.Hostname())
	})
}

// resolveWebhook picks the target for one message. custom is true when the
// caller named the webhook.
func (h *Handlers) resolveWebhook(requested string) (webhookURL string, custom bool, err error) {
	if requested != "" {
		if !h.webhookAllowed(requested) {
			return "", true, errWebhookNotAllowed
		}
		return requested, true, nil
	}
	if h.DefaultWebhook != nil {
		return h.DefaultWebhook(), false, nil
	}
	return "", false, nil
}

// redact drops the upstream response body from results sent back for a
// caller-named webhook.
func redact(res notification.Result, custom bool) notification.Result {
	if custom {
		res.ResponseBody = ""
	}
	return res
}

// PostMessage handles POST /v1/messages.
// 200 on Success, 502 when Google Chat rejected or could not be reached,
// 400 when an input is missing, 403 when webhook_url is not allowed.
func (h *Handlers) PostMessage(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[postMessageRequest](w, r, maxBodyBytes)
	if !ok {
		return
	}

	webhookURL, custom, err := h.resolveWebhook(req.WebhookURL)
	if err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	res, err := h.Notifications.Post(r.Context(), webhookURL, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	res = redact(res, custom)
	if !res.OK() {
		writeJSON(w, http.StatusBadGateway, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PostBatch handles POST /v1/messages/batch. Entries are posted
// independently; the response lists one result per entry in request order.
// 200 when every entry succeeded, 502 otherwise.
func (h *Handlers) PostBatch(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[batchRequest](w, r, maxBodyBytes)
	if !ok {
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages is required")
		return
	}
	if len(req.Messages) > maxBatchSize {
		writeError(w, http.StatusRequestEntityTooLarge, "too many messages in batch")
		return
	}

	targets := make([]service.Target, len(req.Messages))
	custom := make([]bool, len(req.Messages))
	for i, m := range req.Messages {
		webhookURL, isCustom, err := h.resolveWebhook(m.WebhookURL)
		if err != nil {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		targets[i] = service.Target{WebhookURL: webhookURL, Message: m.Message}
		custom[i] = isCustom
	}

	results := h.Notifications.PostMany(r.Context(), targets)

	status := http.StatusOK
	resp := batchResponse{Results: make([]batchEntry, len(results))}
	for i, br := range results {
		entry := batchEntry{Result: redact(br.Result, custom[i])}
		if br.Err != nil {
			entry.Error = br.Err.Error()
		}
		if !br.OK() {
			status = http.StatusBadGateway
		}
		resp.Results[i] = entry
	}
	writeJSON(w, status, resp)
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
