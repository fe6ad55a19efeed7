package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/claude/piste/internal/plan"
	"github.com/claude/piste/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server exposing the plan store and the aggregation
// engine: stored templates and sessions can be queried, and inline plans can
// be derived without persisting them.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Piste", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Piste training plan server. Query session templates, planned sessions and their derived totals (volume, series and block counts)."),
	)

	h := &handlers{db: db, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
		server.ServerTool{Tool: toolGetTemplate, Handler: h.getTemplate},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolPlanTotals, Handler: h.planTotals},
	)

	s.AddResources(
		server.ServerResource{Resource: resBlockCatalog, Handler: h.blockCatalog},
		server.ServerResource{Resource: resPaceReferences, Handler: h.paceReferences},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}

// --- Resource definitions ---

var resBlockCatalog = mcp.NewResource(
	"piste://block_catalog",
	"Block Catalog",
	mcp.WithResourceDescription("The ordered catalog of block types a segment can take"),
	mcp.WithMIMEType("application/json"),
)

var resPaceReferences = mcp.NewResource(
	"piste://pace_references",
	"Pace References",
	mcp.WithResourceDescription("The static pace/intensity reference table (distance records and loads)"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) blockCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req, plan.BlockCatalog())
}

func (h *handlers) paceReferences(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req, plan.References())
}

func jsonResource(req mcp.ReadResourceRequest, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
