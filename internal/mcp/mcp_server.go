// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openforest/millpulse/internal/contract"
)

// NewMCPServer initializes and configures the MillPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, wh contract.WarehouseClient) *server.MCPServer {
	s := server.NewMCPServer(
		"MillPulse Reporting Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		wh:      wh,
	}

	// --- 1. Tool: generate_briefing ---
	s.AddTool(mcp.NewTool("generate_briefing",
		mcp.WithDescription("Generate the daily BI briefing: operations, supply chain and finance summaries with baseline comparisons."),
		mcp.WithString("run_date", mcp.Description("Report date in YYYY-MM-DD form (defaults to today).")),
	), h.handleGenerateBriefing)

	// --- 2. Tool: generate_copilot ---
	s.AddTool(mcp.NewTool("generate_copilot",
		mcp.WithDescription("Generate the AI copilot report: diagnostic entity rankings, trend forecasts and prescriptive actions."),
	), h.handleGenerateCopilot)

	// --- 3. Tool: get_kpi_snapshot ---
	s.AddTool(mcp.NewTool("get_kpi_snapshot",
		mcp.WithDescription("Return the current-vs-baseline KPI comparison for every metric as JSON rows."),
		mcp.WithString("domain", mcp.Description("Restrict to one domain (production, shipments, finance)."), mcp.Enum("production", "shipments", "finance")),
	), h.handleGetKpiSnapshot)

	// --- 4. Tool: get_warehouse_status ---
	s.AddTool(mcp.NewTool("get_warehouse_status",
		mcp.WithDescription("Return warehouse backend details and per-table row counts."),
	), h.handleGetWarehouseStatus)

	return s
}

// StartMCPServer starts the MillPulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, wh contract.WarehouseClient) error {
	s := NewMCPServer(baseCfg, wh)
	return server.ServeStdio(s)
}
