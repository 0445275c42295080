package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStripANSI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"\x1b[2K\x1b[1Ghello", "hello"},
		{"col\x1b[31mor\x1b[0med", "colored"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StripANSI(tc.in); got != tc.want {
			t.Errorf("StripANSI(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// writeScript drops an executable shell script into dir and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOllamaCLIGenerateStripsOutput(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "fake-ollama", `printf '\033[2K\033[1GHello from %s' "$2"`)

	p := NewOllamaCLI("qwen2.5", time.Minute)
	p.binary = bin

	got := p.Generate(context.Background(), "hi", "")
	if got != "Hello from qwen2.5" {
		t.Fatalf("Generate = %q", got)
	}
}

func TestOllamaCLIModelOverride(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "fake-ollama", `printf '%s' "$2"`)

	p := NewOllamaCLI("qwen2.5", time.Minute)
	p.binary = bin

	if got := p.Generate(context.Background(), "hi", "llama3"); got != "llama3" {
		t.Fatalf("model override not passed through, got %q", got)
	}
}

func TestOllamaCLIRuntimeMissing(t *testing.T) {
	p := NewOllamaCLI("qwen2.5", time.Minute)
	p.binary = filepath.Join(t.TempDir(), "definitely-not-installed")

	got := p.Generate(context.Background(), "hi", "")
	if got != runtimeMissingMsg {
		t.Fatalf("Generate = %q, want runtime missing message", got)
	}
}

func TestOllamaCLINonZeroExit(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "fake-ollama", `printf '\033[31mmodel not pulled\033[0m' >&2; exit 3`)

	p := NewOllamaCLI("qwen2.5", time.Minute)
	p.binary = bin

	got := p.Generate(context.Background(), "hi", "")
	if !strings.Contains(got, "(3)") || !strings.Contains(got, "model not pulled") {
		t.Fatalf("Generate = %q, want exit code and cleaned stderr", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("stderr not cleaned: %q", got)
	}
}

func TestOllamaCLINonZeroExitEmptyStderr(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "fake-ollama", `exit 1`)

	p := NewOllamaCLI("qwen2.5", time.Minute)
	p.binary = bin

	got := p.Generate(context.Background(), "hi", "")
	if !strings.Contains(got, "Unknown error") {
		t.Fatalf("Generate = %q, want Unknown error fallback", got)
	}
}

func TestOllamaCLITimeout(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "fake-ollama", `sleep 5`)

	p := NewOllamaCLI("qwen2.5", 100*time.Millisecond)
	p.binary = bin

	got := p.Generate(context.Background(), "hi", "")
	if !strings.Contains(got, "timed out") {
		t.Fatalf("Generate = %q, want timeout message", got)
	}
}
