package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Personal strength-training log. Query workout records (bench_press, deadlift, squat sets with weight, reps and estimated one-rep max) or estimate a 1RM from a weight/reps pair."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListWorkoutRecords, Handler: h.listWorkoutRecords},
		server.ServerTool{Tool: toolGetWorkoutRecord, Handler: h.getWorkoutRecord},
		server.ServerTool{Tool: toolEstimate1RM, Handler: h.estimate1RM},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentRecords, Handler: h.recentRecords},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}
