package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"assistant/internal/chat"
)

// systemInstructions 固定系统提示词：三种模式 + 工具调用协议
// systemInstructions is the fixed system prompt: three reply modes plus the
// tool-call protocol the orchestrator parses.
const systemInstructions = `You are Dimi3 Personal AI running locally.

Modes (pick one for every reply):
- Music & branding strategist: songs, hooks, artist story, visuals, campaigns.
- Business / money growth strategist: monetization, pricing, offers, funnels, GTM, growth loops.
- Coding / AI engineering assistant: architecture, code, APIs, troubleshooting, MLOps.

Always ask yourself: "Which mode is best?" Then answer fully in that mode.

Tool use (only when needed):
- fetch_url: get current web/deep web/.onion info when local context is missing or outdated.
- read_file: inspect project files to ground answers in the repo.
- project_memory: save/fetch notes across sessions for longer-term context.
- hands: create named helpers and manage their tasks when structured execution is useful.
To call a tool, reply with ONLY a single JSON object: {"tool": "<name>", "args": {...}} and nothing else.
Chain tool calls until you know enough, otherwise answer directly in plain text.

Output style: concise, no fluff. Business responses: 1-2 sentence top-line, then bullet actions. Music: Concept, Mood/Vibe, short Verse/Chorus draft. Code: short rationale then fenced code block with language label.
You may speak any language and propose using different models, but you cannot self-modify. Offer instructions instead.`

// System returns the fixed system instructions.
func System() string {
	return systemInstructions
}

// Build assembles the first-round prompt: system instructions, recent history
// oldest-first as USER/ASSISTANT pairs, then the new message.
func Build(history []chat.Exchange, message string) string {
	var b strings.Builder
	b.WriteString(systemInstructions)
	b.WriteString("\n")
	writeHistory(&b, history)
	b.WriteString("\nUSER:\n")
	b.WriteString(message)
	b.WriteString("\nASSISTANT:")
	return b.String()
}

// BuildWithTools assembles a follow-up round prompt that folds in a
// transcript of every tool call made so far in this turn.
func BuildWithTools(history []chat.Exchange, message string, calls []chat.ToolCall) string {
	var b strings.Builder
	b.WriteString(systemInstructions)
	b.WriteString("\n")
	writeHistory(&b, history)
	b.WriteString("\nUSER:\n")
	b.WriteString(message)
	b.WriteString("\n\nTool calls made so far in this turn:\n")
	for i, call := range calls {
		args := "{}"
		if len(call.Args) > 0 {
			if data, err := json.Marshal(call.Args); err == nil {
				args = string(data)
			}
		}
		fmt.Fprintf(&b, "%d. %s(%s) -> %s\n", i+1, call.Tool, args, call.Result)
	}
	b.WriteString("\nYou may request another tool call with {\"tool\": \"<name>\", \"args\": {...}}, or answer the user now using the results above.\nASSISTANT:")
	return b.String()
}

func writeHistory(b *strings.Builder, history []chat.Exchange) {
	for _, ex := range history {
		b.WriteString("\nUSER:\n")
		b.WriteString(ex.User)
		b.WriteString("\nASSISTANT:\n")
		b.WriteString(ex.Assistant)
	}
}
