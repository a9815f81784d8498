package mcp

import (
	"context"
	"encoding/json"
	"errors"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Strob0t/gchat-notify/internal/domain"
)

// ToolPostToGoogleChat is the tool name exposed to MCP clients.
const ToolPostToGoogleChat = "post_to_google_chat"

// registerTools registers all MCP tools on the server.
func (s *Server) registerTools() {
	s.mcpServer.AddTools(s.postToGoogleChatTool())
}

func (s *Server) postToGoogleChatTool() mcpserver.ServerTool {
	tool := mcplib.NewTool(ToolPostToGoogleChat,
		mcplib.WithDescription("Posts a message into Google Chat"),
		mcplib.WithString("message",
			mcplib.Required(),
			mcplib.Description("The message you want to post into Google Chat"),
		),
		mcplib.WithString("webhook_url",
			mcplib.Description("Google Chat webhook URL; the server default is used when omitted"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.handlePostToGoogleChat,
	}
}

func (s *Server) handlePostToGoogleChat(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Poster == nil {
		return mcplib.NewToolResultError("poster not configured"), nil
	}

	args := req.GetArguments()
	message, _ := args["message"].(string)
	webhookURL, _ := args["webhook_url"].(string)
	if webhookURL == "" && s.deps.DefaultWebhook != nil {
		webhookURL = s.deps.DefaultWebhook()
	}

	res, err := s.deps.Poster.Post(ctx, webhookURL, message)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return mcplib.NewToolResultError(err.Error()), nil
		}
		return mcplib.NewToolResultErrorFromErr("failed to post message", err), nil
	}
	if !res.OK() {
		return mcplib.NewToolResultError(res.Err().Error()), nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal result", err), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}
