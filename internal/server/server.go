// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"github.com/lifelog/lifelog-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the mcp-go server with the lifelog tool set
type MCPServer struct {
	mcpServer *server.MCPServer
	toolCtx   *tools.ToolContext
}

// NewMCPServer creates a new MCP server instance and registers all tools
func NewMCPServer(version string, toolCtx *tools.ToolContext) *MCPServer {
	mcpServer := server.NewMCPServer(
		"Lifelog",
		version,
		server.WithToolCapabilities(true),
	)

	srv := &MCPServer{
		mcpServer: mcpServer,
		toolCtx:   toolCtx,
	}
	srv.registerTools()
	return srv
}

// registerTools registers the lifelog tool set
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(tools.NewLogMoodTool(), tools.LogMoodHandler(s.toolCtx))
	s.mcpServer.AddTool(tools.NewLogFoodTool(), tools.LogFoodHandler(s.toolCtx))
	s.mcpServer.AddTool(tools.NewLogMemoryTool(), tools.LogMemoryHandler(s.toolCtx))
	s.mcpServer.AddTool(tools.NewHistoryTool(), tools.HistoryHandler(s.toolCtx))
	s.mcpServer.AddTool(tools.NewRecentTool(), tools.RecentHandler(s.toolCtx))
	s.mcpServer.AddTool(tools.NewMergePlacesTool(), tools.MergePlacesHandler(s.toolCtx))
}

// ServeStdio runs the stdio event loop until the client disconnects
func (s *MCPServer) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// GetMCPServer returns the underlying MCP server
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
