// Package mcp exposes the Google Chat post action as a Model Context Protocol tool.
package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Strob0t/gchat-notify/internal/domain/notification"
)

// Poster sends one message. Implemented by service.NotificationService.
type Poster interface {
	Post(ctx context.Context, webhookURL, message string) (notification.Result, error)
}

// ServerConfig holds MCP server identity.
type ServerConfig struct {
	Name    string
	Version string
}

// ServerDeps holds the tool dependencies. DefaultWebhook is consulted when a
// call omits webhook_url.
type ServerDeps struct {
	Poster         Poster
	DefaultWebhook func() string
}

// Server wraps an MCP server with the post_to_google_chat tool registered.
type Server struct {
	cfg       ServerConfig
	deps      ServerDeps
	mcpServer *mcpserver.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(cfg ServerConfig, deps ServerDeps) *Server {
	s := &Server{
		cfg:  cfg,
		deps: deps,
		mcpServer: mcpserver.NewMCPServer(cfg.Name, cfg.Version,
			mcpserver.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// ServeStdio serves JSON-RPC over the given streams until ctx is cancelled
// or stdin closes.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	slog.Info("mcp server listening on stdio", "name", s.cfg.Name, "version", s.cfg.Version)
	return mcpserver.NewStdioServer(s.mcpServer).Listen(ctx, stdin, stdout)
}
