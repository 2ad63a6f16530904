package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("TrainLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("TrainLog training diary server. Search exercises by sport type, intensity, date range and comment text, and read notes and body weight history."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
		server.ServerTool{Tool: toolGetExercise, Handler: h.getExercise},
		server.ServerTool{Tool: toolListSportTypes, Handler: h.listSportTypes},
		server.ServerTool{Tool: toolGetNotes, Handler: h.getNotes},
		server.ServerTool{Tool: toolGetWeightHistory, Handler: h.getWeightHistory},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentExercises, Handler: h.recentExercises},
		server.ServerResource{Resource: resSportTypeCatalog, Handler: h.sportTypeCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentExercises = mcp.NewResource(
	"trainlog://recent_exercises",
	"Recent Exercises",
	mcp.WithResourceDescription("Exercises from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resSportTypeCatalog = mcp.NewResource(
	"trainlog://sport_types",
	"Sport Type Catalog",
	mcp.WithResourceDescription("All sport types with their subtypes and equipment"),
	mcp.WithMIMEType("application/json"),
)
