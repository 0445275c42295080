package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompat talks to an OpenAI-compatible endpoint (ollama's /v1, LM
// Studio, llama.cpp server). Useful when the ollama binary is not on PATH
// but the HTTP API is reachable.
type OpenAICompat struct {
	client       *openai.Client
	defaultModel string
	timeout      time.Duration
}

// OpenAIConfig API 网关配置
// OpenAIConfig configures the API-backed gateway.
type OpenAIConfig struct {
	BaseURL      string
	APIKey       string
	DefaultModel string
	Timeout      time.Duration
}

func NewOpenAICompat(cfg OpenAIConfig) *OpenAICompat {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	clientCfg.HTTPClient = &http.Client{}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &OpenAICompat{
		client:       openai.NewClientWithConfig(clientCfg),
		defaultModel: cfg.DefaultModel,
		timeout:      cfg.Timeout,
	}
}

func (p *OpenAICompat) Name() string {
	return "openai-compat"
}

func (p *OpenAICompat) DefaultModel() string {
	return p.defaultModel
}

func (p *OpenAICompat) Generate(ctx context.Context, prompt, model string) string {
	chosen := strings.TrimSpace(model)
	if chosen == "" {
		chosen = p.defaultModel
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chosen,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Sprintf("The local model could not be reached (timed out after %s). Try a smaller model or a shorter message.", p.timeout)
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("The local model could not be reached (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		// Connection refused and friends: the server side of the runtime is
		// not up, which for a local install means the same remedy.
		return runtimeMissingMsg
	}
	if len(resp.Choices) == 0 {
		return "The local model returned an empty response."
	}
	return StripANSI(resp.Choices[0].Message.Content)
}
