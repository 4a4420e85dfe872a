package mcp

import (
	"encoding/json"
	"fmt"

	"dealboard/internal/crm"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxListedWarnings caps the coercion warnings echoed back to the client.
const maxListedWarnings = 20

// ResponseEnvelope is the JSON body of every tool result.
type ResponseEnvelope struct {
	Data     any      `json:"data"`
	Warnings []string `json:"warnings,omitempty"`
	Guidance []string `json:"_guidance,omitempty"`
}

func (s *Server) formatResult(data any) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}

// result renders the envelope as text content, followed by the chart when charts are enabled.
func (s *Server) result(env ResponseEnvelope, chart string) *sdk.CallToolResult {
	content := []sdk.Content{&sdk.TextContent{Text: s.formatResult(env)}}
	if chart != "" && s.chartsEnabled() {
		content = append(content, &sdk.TextContent{Text: chart})
	}
	return &sdk.CallToolResult{Content: content}
}

func (s *Server) chartsEnabled() bool {
	return s.cfg == nil || s.cfg.EnableMermaidCharts
}

// describeWarnings turns coercion warnings into short human-readable lines.
func describeWarnings(ws []crm.CoercionWarning) []string {
	if len(ws) == 0 {
		return nil
	}
	n := min(len(ws), maxListedWarnings)
	out := make([]string, 0, n+1)
	for _, w := range ws[:n] {
		out = append(out, fmt.Sprintf("%s row %d: %q in %s could not be read and was left empty", w.Relation, w.Row+1, w.Value, w.Column))
	}
	if len(ws) > n {
		out = append(out, fmt.Sprintf("... and %d more", len(ws)-n))
	}
	return out
}
