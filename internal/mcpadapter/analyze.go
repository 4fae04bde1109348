package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/analyzer"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/models"
)

// AnalyzeInput is the MCP tool input schema (matches HTTP API field names).
type AnalyzeInput struct {
	UserInput         string  `json:"user_input" jsonschema:"untrusted text to screen for prompt injection"`
	PromptOverrideKey *string `json:"prompt_override_key,omitempty" jsonschema:"optional storage key of a custom screening template"`
}

// NewAnalyzeHandler returns a tool handler backed by the given analyzer.
// Pass the returned function to mcp.AddTool.
func NewAnalyzeHandler(a *analyzer.Analyzer) func(context.Context, *mcp.CallToolRequest, AnalyzeInput) (*mcp.CallToolResult, models.Verdict, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, models.Verdict, error) {
		verdict, err := a.Analyze(ctx, models.AnalyzeRequest{
			UserInput:         input.UserInput,
			PromptOverrideKey: input.PromptOverrideKey,
		})
		if err != nil {
			return nil, models.Verdict{}, err
		}
		return nil, verdict, nil
	}
}
