package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// runtimeMissingMsg 本地模型运行时未安装时返回给用户的提示
// runtimeMissingMsg is shown when the local model runtime is not installed.
const runtimeMissingMsg = "Local model runtime not found. Please install and start Ollama before chatting."

// OllamaCLI invokes a locally hosted model through the ollama binary,
// writing the prompt to stdin and reading the generation from stdout.
type OllamaCLI struct {
	binary       string
	defaultModel string
	timeout      time.Duration
}

// NewOllamaCLI creates a CLI-backed gateway. timeout bounds a single
// generation; zero falls back to two minutes.
func NewOllamaCLI(defaultModel string, timeout time.Duration) *OllamaCLI {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &OllamaCLI{binary: "ollama", defaultModel: defaultModel, timeout: timeout}
}

func (p *OllamaCLI) Name() string {
	return "ollama-cli"
}

func (p *OllamaCLI) DefaultModel() string {
	return p.defaultModel
}

func (p *OllamaCLI) Generate(ctx context.Context, prompt, model string) string {
	chosen := strings.TrimSpace(model)
	if chosen == "" {
		chosen = p.defaultModel
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary, "run", chosen)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return StripANSI(stdout.String())
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return runtimeMissingMsg
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("The local model could not be reached (timed out after %s). Try a smaller model or a shorter message.", p.timeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		details := strings.TrimSpace(StripANSI(stderr.String()))
		if details == "" {
			details = "Unknown error"
		}
		return fmt.Sprintf("The local model could not be reached (%d): %s", exitErr.ExitCode(), details)
	}
	return fmt.Sprintf("The local model could not be reached: %v", err)
}
