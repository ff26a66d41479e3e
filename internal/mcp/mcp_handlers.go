package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/openforest/millpulse/core"
	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	wh      contract.WarehouseClient
}

// policy builds the metric policy with the configured edge overrides applied.
func (h *toolHandler) policy() *core.Policy {
	pol := core.DefaultPolicy()
	pol.ApplyEdges(h.baseCfg.Edges)
	return pol
}

func (h *toolHandler) handleGenerateBriefing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runDate := h.baseCfg.RunDate
	if s := request.GetString("run_date", ""); s != "" {
		t, err := time.Parse(contract.DateFormat, s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid run_date: %v", err)), nil
		}
		runDate = t
	}

	report, err := core.ComposeBriefing(ctx, h.wh, h.policy(), runDate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("briefing failed: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}

func (h *toolHandler) handleGenerateCopilot(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := core.ComposeCopilot(ctx, h.wh, h.policy())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("copilot failed: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}

func (h *toolHandler) handleGetKpiSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := core.BuildKpiRows(ctx, h.wh, h.policy())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("kpi snapshot failed: %v", err)), nil
	}

	if d := request.GetString("domain", ""); d != "" {
		domain := schema.Domain(d)
		filtered := rows[:0]
		for _, row := range rows {
			if row.Domain == domain {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetWarehouseStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.wh.GetStatus(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
