package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/hpmalabs/hpma/core"
	"github.com/hpmalabs/hpma/core/report"
	"github.com/hpmalabs/hpma/core/rules"
	"github.com/hpmalabs/hpma/internal/bank"
	"github.com/hpmalabs/hpma/internal/content"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/internal/responses"
	"github.com/hpmalabs/hpma/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// conditionResult is the answer of evaluate_condition.
type conditionResult struct {
	Condition string `json:"condition"`
	Result    bool   `json:"result"`
}

// scoreRequest parses the response document of a request and scores it.
func (h *toolHandler) scoreRequest(cfg *contract.Config, request mcp.CallToolRequest) (*schema.Profile, error) {
	data := request.GetString("responses", "")
	if data == "" {
		return nil, errors.New("responses is required")
	}

	b, err := bank.Default()
	if err != nil {
		return nil, err
	}

	format := responses.Format(request.GetString("format", ""))
	if format == "" {
		format = responses.DetectFormat("", []byte(data))
	}
	rs, err := responses.Parse([]byte(data), format, b, cfg.Strict)
	if err != nil {
		return nil, err
	}
	if name := request.GetString("respondent", ""); name != "" {
		rs.Respondent = name
	}

	return core.ScoreResponseSet(rs, b, cfg, h.mgr), nil
}

func (h *toolHandler) handleScoreResponses(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	p, err := h.scoreRequest(cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(p, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyProbabilities(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	probs, err := core.ParseProbabilities(request.GetString("probabilities", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid probabilities: %v", err)), nil
	}

	roster := core.ClassifyRoster(probs)
	jsonData, _ := json.MarshalIndent(roster, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateCondition(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	condition := request.GetString("condition", "")
	parsed, err := rules.Parse(condition)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid condition: %v", err)), nil
	}

	var p schema.Profile
	if err := json.Unmarshal([]byte(request.GetString("profile", "")), &p); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid profile: %v", err)), nil
	}

	bundle, err := content.Load(cfg.ContentDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("content failed to load: %v", err)), nil
	}
	thresholds := maps.Clone(bundle.Rules.Thresholds)
	if thresholds == nil {
		thresholds = make(map[string]float64)
	}
	maps.Copy(thresholds, cfg.ThresholdOverrides)

	result := rules.NewEvaluator(thresholds).Eval(parsed, rules.BuildContext(&p))
	jsonData, _ := json.MarshalIndent(conditionResult{Condition: condition, Result: result}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRenderReport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	bundle, err := content.Load(cfg.ContentDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("content failed to load: %v", err)), nil
	}

	p, err := h.scoreRequest(cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	r := report.Assemble(p, bundle, report.Options{Thresholds: cfg.ThresholdOverrides})
	switch schema.ReportFormat(request.GetString("report_format", string(schema.MarkdownReport))) {
	case schema.JSONReport:
		jsonData, _ := json.MarshalIndent(r, "", "  ")
		return mcp.NewToolResultText(string(jsonData)), nil
	case schema.HTMLReport:
		return mcp.NewToolResultText(string(report.RenderHTML(r))), nil
	case schema.MarkdownReport:
		return mcp.NewToolResultText(report.RenderMarkdown(r)), nil
	default:
		return mcp.NewToolResultError("report_format must be markdown, html or json"), nil
	}
}
