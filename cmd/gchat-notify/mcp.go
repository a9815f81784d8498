package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cfmcp "github.com/Strob0t/gchat-notify/internal/adapter/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the post_to_google_chat tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE:  runMCP,
	}
	cmd.Flags().String("webhook-url", "", "default Google Chat webhook url")
	cmd.Flags().Duration("timeout", 0, "HTTP round trip timeout per dispatch")
	return cmd
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	vault, err := newWebhookVault(a.flags)
	if err != nil {
		return err
	}

	srv := cfmcp.NewServer(
		cfmcp.ServerConfig{Name: appName, Version: appVersion},
		cfmcp.ServerDeps{Poster: a.svc, DefaultWebhook: vault.WebhookURL},
	)
	return srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
