// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the HPMA MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"HPMA Profile Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_responses ---
	s.AddTool(mcp.NewTool("score_responses",
		mcp.WithDescription("Score one respondent's questionnaire answers into a full HPMA profile."),
		mcp.WithString("responses", mcp.Description("Response document: JSON or YAML with baseline/contexts blocks, or CSV rows of id,rating."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Encoding of the responses. Detected from the content when omitted."), mcp.Enum("json", "yaml", "csv")),
		mcp.WithString("respondent", mcp.Description("Respondent name recorded in the profile.")),
	), h.handleScoreResponses)

	// --- 2. Tool: classify_probabilities ---
	s.AddTool(mcp.NewTool("classify_probabilities",
		mcp.WithDescription("Classify an archetype probability vector into its roster structure and mode."),
		mcp.WithString("probabilities", mcp.Description("Comma-separated name:value pairs, e.g. 'explorer:0.4,philosopher:0.38,...'. Values must sum to 1."), mcp.Required()),
	), h.handleClassifyProbabilities)

	// --- 3. Tool: evaluate_condition ---
	s.AddTool(mcp.NewTool("evaluate_condition",
		mcp.WithDescription("Evaluate a report rule condition against a scored profile."),
		mcp.WithString("condition", mcp.Description("Condition such as 'scores.hexaco.O >= thresholds.high AND roster.structure == \"DUET\"'."), mcp.Required()),
		mcp.WithString("profile", mcp.Description("Profile JSON as returned by score_responses."), mcp.Required()),
	), h.handleEvaluateCondition)

	// --- 4. Tool: render_report ---
	s.AddTool(mcp.NewTool("render_report",
		mcp.WithDescription("Score answers and render the narrative report for the respondent."),
		mcp.WithString("responses", mcp.Description("Response document, as for score_responses."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Encoding of the responses. Detected from the content when omitted."), mcp.Enum("json", "yaml", "csv")),
		mcp.WithString("respondent", mcp.Description("Respondent name shown in the report.")),
		mcp.WithString("report_format", mcp.Description("Rendering of the report. Defaults to 'markdown'."), mcp.Enum("markdown", "html", "json")),
	), h.handleRenderReport)

	return s
}

// StartMCPServer starts the HPMA MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
