// Command gchat-notify posts messages to Google Chat rooms through incoming webhooks.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	cfotel "github.com/Strob0t/gchat-notify/internal/adapter/otel"
	"github.com/Strob0t/gchat-notify/internal/config"
	"github.com/Strob0t/gchat-notify/internal/domain/notification"
	"github.com/Strob0t/gchat-notify/internal/logger"
	"github.com/Strob0t/gchat-notify/internal/port/notifier"
	"github.com/Strob0t/gchat-notify/internal/service"
)

const (
	appName    = "gchat-notify"
	appVersion = "0.1.0"
	provider   = "googlechat"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Dispatch failures were already reported by the service.
		var dispatchErr *notification.DispatchError
		if !errors.As(err, &dispatchErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Post messages into Google Chat",
		Long: `gchat-notify posts a text message into a Google Chat room through an
incoming webhook (generated via "Configure webhooks" in the room settings).`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", config.DefaultConfigFile, "path to YAML config file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newPostCmd(), newServeCmd(), newMCPCmd())
	return root
}

// app bundles what every subcommand needs after bootstrap.
type app struct {
	cfg      *config.Config
	flags    config.CLIFlags
	svc      *service.NotificationService
	shutdown func()
}

// cliFlags collects the flags the user actually set.
func cliFlags(cmd *cobra.Command) config.CLIFlags {
	var f config.CLIFlags
	fs := cmd.Flags()
	if fs.Changed("config") {
		v, _ := fs.GetString("config")
		f.ConfigPath = &v
	}
	if fs.Changed("log-level") {
		v, _ := fs.GetString("log-level")
		f.LogLevel = &v
	}
	if fs.Lookup("webhook-url") != nil && fs.Changed("webhook-url") {
		v, _ := fs.GetString("webhook-url")
		f.WebhookURL = &v
	}
	if fs.Lookup("message") != nil && fs.Changed("message") {
		v, _ := fs.GetString("message")
		f.Message = &v
	}
	if fs.Lookup("timeout") != nil && fs.Changed("timeout") {
		v, _ := fs.GetDuration("timeout")
		f.Timeout = &v
	}
	if fs.Lookup("host") != nil && fs.Changed("host") {
		v, _ := fs.GetString("host")
		f.Host = &v
	}
	if fs.Lookup("port") != nil && fs.Changed("port") {
		v, _ := fs.GetString("port")
		f.Port = &v
	}
	return f
}

// bootstrap loads config and wires logging, telemetry and the notification service.
func bootstrap(ctx context.Context, cmd *cobra.Command) (*app, error) {
	flags := cliFlags(cmd)
	cfg, cfgPath, err := config.LoadWithCLI(flags)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging, cmd.ErrOrStderr())
	slog.SetDefault(log)
	slog.Debug("config loaded",
		"path", cfgPath,
		"timeout", cfg.Notify.Timeout,
		"telemetry", cfg.Telemetry.Enabled,
	)

	otelShutdown, err := cfotel.Setup(ctx, cfg.Telemetry, cfg.Logging.Service)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	n, err := notifier.New(provider, map[string]string{"timeout": cfg.Notify.Timeout.String()})
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("notifier: %w", err)
	}

	svc := service.NewNotificationService(n, cfg.Notify.MaxParallel)
	if m, err := cfotel.NewMetrics(); err != nil {
		slog.Warn("metrics disabled", "error", err)
	} else {
		svc.SetMetrics(m)
	}

	return &app{
		cfg:   cfg,
		flags: flags,
		svc:   svc,
		shutdown: func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				slog.Warn("telemetry shutdown", "error", err)
			}
			logCloser.Close()
		},
	}, nil
}
