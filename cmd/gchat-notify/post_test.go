package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Strob0t/gchat-notify/internal/config"
	"github.com/Strob0t/gchat-notify/internal/domain/notification"
)

func TestReadMessagePiped(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing newline", "Build succeeded\n", "Build succeeded"},
		{"crlf", "Build succeeded\r\n", "Build succeeded"},
		{"multi line", "line one\nline two\n", "line one\nline two"},
		{"no newline", "as is", "as is"},
		{"only one newline trimmed", "padded\n\n", "padded\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := readMessage(strings.NewReader(tt.input), false, &prompt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if prompt.Len() != 0 {
				t.Errorf("piped input must not prompt, got %q", prompt.String())
			}
		})
	}
}

func TestReadMessageInteractive(t *testing.T) {
	var prompt bytes.Buffer
	got, err := readMessage(strings.NewReader("Deploy done\nignored\n"), true, &prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Deploy done" {
		t.Errorf("got %q, want %q", got, "Deploy done")
	}
	if prompt.String() != "Message: " {
		t.Errorf("unexpected prompt %q", prompt.String())
	}
}

// runCLI executes the root command with a clean environment and returns the
// captured log output.
func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GCHAT_WEBHOOK_URL", "")
	t.Setenv("GCHAT_MESSAGE", "")
	t.Setenv("GCHAT_OTEL_ENABLED", "")

	var stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--config", t.TempDir() + "/none.yaml"}, args...))
	root.SetErr(&stderr)
	root.SetOut(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	err := root.Execute()
	return stderr.String(), err
}

func TestPostCommandSuccess(t *testing.T) {
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody.Store(string(b))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	logs, err := runCLI(t, nil, "post", "--webhook-url", srv.URL, "--message", "Build succeeded")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body, _ := gotBody.Load().(string); body != `{"text":"Build succeeded"}` {
		t.Errorf("unexpected payload %q", body)
	}
	if !strings.Contains(logs, "Successfully posted message to Google Chat") {
		t.Errorf("expected success log, got %s", logs)
	}
	if strings.Contains(logs, srv.URL) {
		t.Error("webhook url must not be logged")
	}
}

func TestPostCommandMessageFromStdin(t *testing.T) {
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody.Store(string(b))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := runCLI(t, strings.NewReader("from a pipe\n"), "post", "--webhook-url", srv.URL, "--message", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body, _ := gotBody.Load().(string); body != `{"text":"from a pipe"}` {
		t.Errorf("unexpected payload %q", body)
	}
}

func TestPostCommandHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	}))
	defer srv.Close()

	logs, err := runCLI(t, nil, "post", "--webhook-url", srv.URL, "--message", "hi")
	var dispatchErr *notification.DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("expected *DispatchError, got %v", err)
	}
	if dispatchErr.Result.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected result %+v", dispatchErr.Result)
	}
	if !strings.Contains(logs, "Failed to post to Google Chat") {
		t.Errorf("expected failure log, got %s", logs)
	}
}

func TestPostCommandMissingEndpoint(t *testing.T) {
	_, err := runCLI(t, nil, "post", "--message", "hi")
	if !errors.Is(err, notification.ErrMissingEndpoint) {
		t.Fatalf("expected ErrMissingEndpoint, got %v", err)
	}
	if !strings.Contains(err.Error(), "webhook_url: 'url'") {
		t.Errorf("error should be actionable, got %q", err.Error())
	}
}

func TestPostCommandMissingMessage(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := runCLI(t, nil, "post", "--webhook-url", srv.URL)
	if !errors.Is(err, notification.ErrMissingMessage) {
		t.Fatalf("expected ErrMissingMessage, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("no request expected on config error, got %d", calls.Load())
	}
}

func TestNewWebhookVaultReadsConfig(t *testing.T) {
	t.Setenv("GCHAT_WEBHOOK_URL", "https://chat.example/hook")
	path := t.TempDir() + "/none.yaml"

	vault, err := newWebhookVault(cliFlagsFor(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vault.WebhookURL() != "https://chat.example/hook" {
		t.Fatalf("unexpected webhook %q", vault.WebhookURL())
	}

	t.Setenv("GCHAT_WEBHOOK_URL", "https://chat.example/rotated")
	if err := vault.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if vault.WebhookURL() != "https://chat.example/rotated" {
		t.Fatalf("reload did not pick up new webhook, got %q", vault.WebhookURL())
	}
}

func TestRootHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"post", "serve", "mcp"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func cliFlagsFor(configPath string) config.CLIFlags {
	return config.CLIFlags{ConfigPath: &configPath}
}

func TestIsTerminalNonFile(t *testing.T) {
	if isTerminal(strings.NewReader("x")) {
		t.Fatal("a non-file reader is never a terminal")
	}
}
