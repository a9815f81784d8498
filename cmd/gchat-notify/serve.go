package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	cfhttp "github.com/Strob0t/gchat-notify/internal/adapter/http"
	"github.com/Strob0t/gchat-notify/internal/config"
	"github.com/Strob0t/gchat-notify/internal/secrets"
)

// shutdownGrace bounds graceful HTTP shutdown.
const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP relay that posts messages into Google Chat",
		Long: `serve accepts POST /v1/messages with {"message": "...", "webhook_url": "..."}
and POST /v1/messages/batch with {"messages": [...]}. When webhook_url is
omitted the configured default is used; a given webhook_url must be https on a
host listed in server.allowed_webhook_hosts. Send SIGHUP to re-read the
default webhook from the config file and environment.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("webhook-url", "", "default Google Chat webhook url")
	cmd.Flags().String("host", "", "listen address (default from config, 127.0.0.1)")
	cmd.Flags().StringP("port", "p", "", "listen port (default from config, 8080)")
	cmd.Flags().Duration("timeout", 0, "HTTP round trip timeout per dispatch")
	return cmd
}

// newWebhookVault builds a vault whose loader re-reads the config hierarchy,
// so a reload picks up edits to the YAML file.
func newWebhookVault(flags config.CLIFlags) (*secrets.Vault, error) {
	return secrets.NewVault(func() (string, error) {
		cfg, _, err := config.LoadWithCLI(flags)
		if err != nil {
			return "", err
		}
		return cfg.Notify.WebhookURL, nil
	})
}

// listenAddr joins host and port; IPv6 hosts are bracketed.
func listenAddr(s config.Server) string {
	return net.JoinHostPort(s.Host, s.Port)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	vault, err := newWebhookVault(a.flags)
	if err != nil {
		return err
	}

	handlers := &cfhttp.Handlers{
		Notifications:       a.svc,
		DefaultWebhook:      vault.WebhookURL,
		AllowedWebhookHosts: a.cfg.Server.AllowedWebhookHosts,
	}

	addr := listenAddr(a.cfg.Server)
	srv := &http.Server{
		Addr:              addr,
		Handler:           cfhttp.NewRouter(handlers, a.cfg.Logging.Service),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      a.cfg.Notify.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(done)
	defer signal.Stop(hup)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr, "allowed_webhook_hosts", a.cfg.Server.AllowedWebhookHosts)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	for {
		select {
		case <-hup:
			if err := vault.Reload(); err != nil {
				slog.Error("webhook reload failed", "error", err)
				continue
			}
			slog.Info("default webhook reloaded", "webhook", secrets.Fingerprint(vault.WebhookURL()))
		case err := <-errCh:
			return err
		case <-done:
			slog.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}
