package orchestrator

import (
	"encoding/json"
	"strings"
)

// ToolRequest is the model's request to run one tool.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// ParseToolRequest decides whether a model reply is a tool call. The
// protocol is lenient on purpose: anything that is not exactly one JSON
// object with a non-empty "tool" string is treated as a final answer, never
// as an error.
func ParseToolRequest(raw string) (ToolRequest, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return ToolRequest{}, false
	}

	var req ToolRequest
	dec := json.NewDecoder(strings.NewReader(trimmed))
	if err := dec.Decode(&req); err != nil {
		return ToolRequest{}, false
	}
	// Trailing content after the object means the reply is prose that merely
	// starts with JSON.
	if dec.More() {
		return ToolRequest{}, false
	}
	if strings.TrimSpace(req.Tool) == "" {
		return ToolRequest{}, false
	}
	if req.Args == nil {
		req.Args = map[string]any{}
	}
	return req, true
}
