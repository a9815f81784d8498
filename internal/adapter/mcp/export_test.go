package mcp

import mcpserver "github.com/mark3labs/mcp-go/server"

// MCPServer exposes the underlying mcp-go server to the black-box tests.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}
