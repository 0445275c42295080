package tools

import "context"

// EchoTool returns its input unchanged. Diagnostic-only: useful for checking
// the tool-call loop end to end without side effects.
type EchoTool struct{}

func NewEchoTool() *EchoTool {
	return &EchoTool{}
}

func (t *EchoTool) Name() string {
	return "echo"
}

func (t *EchoTool) Execute(_ context.Context, args map[string]any, _ string) (string, error) {
	var in struct {
		Text string `json:"text"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	return in.Text, nil
}
