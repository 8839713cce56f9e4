// Package mcp exposes typedroutes to MCP clients over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdul-hamid-achik/typedroutes/internal/version"
)

// Server is the typedroutes MCP server.
type Server struct {
	workdir   string
	mcpServer *server.MCPServer
}

// NewServer creates a server operating on the project in workdir.
func NewServer(workdir string) *Server {
	s := &Server{
		workdir: workdir,
		mcpServer: server.NewMCPServer(
			"typedroutes",
			version.GetVersion(),
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// Serve runs the server over stdio until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("typedroutes_list_routes",
		mcp.WithDescription("List the routes discovered in the routes directory with their patterns, payloads and endpoints"),
	), s.handleListRoutes)

	s.mcpServer.AddTool(mcp.NewTool("typedroutes_generate",
		mcp.WithDescription("Regenerate the typed routes file, manifest and search-params file"),
	), s.handleGenerate)

	s.mcpServer.AddTool(mcp.NewTool("typedroutes_build_path",
		mcp.WithDescription("Build a concrete URL from a route pattern"),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Route pattern, e.g. /posts/:id")),
		mcp.WithObject("params", mcp.Description("Parameter values keyed by name")),
		mcp.WithObject("query", mcp.Description("Query string values")),
	), s.handleBuildPath)

	s.mcpServer.AddTool(mcp.NewTool("typedroutes_new_route",
		mcp.WithDescription("Create a new route file in the routes directory"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Route file path without extension, e.g. posts/[id]")),
		mcp.WithString("methods", mcp.Description("Comma separated HTTP methods, e.g. GET,POST")),
		mcp.WithBoolean("page", mcp.Description("Export a renderable Page")),
		mcp.WithBoolean("searchParams", mcp.Description("Export a SearchParams schema")),
		mcp.WithBoolean("templ", mcp.Description("Write a .templ page")),
	), s.handleNewRoute)

	s.mcpServer.AddTool(mcp.NewTool("typedroutes_info",
		mcp.WithDescription("Show the resolved typedroutes configuration"),
	), s.handleInfo)
}
