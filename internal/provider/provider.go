package provider

import "context"

// Provider 模型网关接口：一次 prompt 进、一段文本出
// Provider is the model gateway interface: prompt in, text out.
//
// Generate never fails from the caller's perspective. Transport and runtime
// faults are mapped to user-facing instructional strings so the orchestrator
// can always fold something back into the conversation. One invocation per
// call; the orchestrator's round loop is the only higher-level retry.
type Provider interface {
	// Generate sends the prompt to the model identified by model (or the
	// provider's default when empty) and returns the cleaned output text.
	Generate(ctx context.Context, prompt, model string) string

	// DefaultModel returns the model used when no override is given.
	DefaultModel() string

	// Name returns the backend name.
	Name() string
}
