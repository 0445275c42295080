package orchestrator

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"assistant/internal/chat"
	"assistant/internal/interaction"
	"assistant/internal/logx"
	"assistant/internal/prompt"
	"assistant/internal/provider"
	"assistant/internal/session"
	"assistant/internal/tools"
)

// maxDepthReply is the final answer when the model keeps requesting tools
// past the round budget.
const maxDepthReply = "I hit the tool-call limit for this turn before reaching an answer. Please try again with a narrower request or more context."

// Orchestrator 回合编排：模型问答与工具调用交替，直至产出最终回复。
// Orchestrator owns the per-turn loop: ask the model, dispatch tool calls it
// requests, fold results back into the prompt, and stop at the first direct
// answer or the round budget.
type Orchestrator struct {
	gateway    provider.Provider
	dispatcher *tools.Dispatcher
	sessions   session.Store
	log        *interaction.Log
	maxRounds  int
}

func New(gateway provider.Provider, dispatcher *tools.Dispatcher, sessions session.Store, log *interaction.Log, maxRounds int) *Orchestrator {
	if maxRounds <= 0 {
		maxRounds = 5
	}
	return &Orchestrator{
		gateway:    gateway,
		dispatcher: dispatcher,
		sessions:   sessions,
		log:        log,
		maxRounds:  maxRounds,
	}
}

// Respond runs one full turn and returns the final reply plus the turn id.
// It never fails from the caller's perspective: gateway and tool failures
// are already strings, and history/log write errors are logged, not
// propagated, so the user still gets the reply that was generated.
func (o *Orchestrator) Respond(ctx context.Context, sessionID, message, modelOverride string) (string, string) {
	turnID := uuid.NewString()
	model := modelOverride
	if model == "" {
		model = o.gateway.DefaultModel()
	}

	history, err := o.sessions.History(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("session", sessionID).Msg("history unavailable, starting turn without it")
		history = nil
	}

	var calls []chat.ToolCall
	current := prompt.Build(history, message)
	final := maxDepthReply

	for round := 1; round <= o.maxRounds; round++ {
		logx.Debug().
			Str("turn_id", turnID).
			Int("round", round).
			Int("prompt_tokens", prompt.EstimateTokens(current)).
			Msg("invoking model")

		reply := o.gateway.Generate(ctx, current, model)

		req, ok := ParseToolRequest(reply)
		if !ok {
			final = strings.TrimSpace(reply)
			break
		}

		// Unknown tools are not special-cased here: the dispatcher's
		// descriptive string goes back to the model like any result.
		result := o.dispatcher.Dispatch(ctx, req.Tool, req.Args, sessionID)
		calls = append(calls, chat.ToolCall{Tool: req.Tool, Args: req.Args, Result: result})
		current = prompt.BuildWithTools(history, message, calls)
	}

	if err := o.sessions.Append(ctx, sessionID, chat.Exchange{User: message, Assistant: final}); err != nil {
		logx.Error().Err(err).Str("session", sessionID).Msg("failed to append session history")
	}
	turn := chat.Turn{
		TurnID:         turnID,
		SessionID:      sessionID,
		UserMessage:    message,
		AssistantReply: final,
		Model:          model,
		ToolCalls:      calls,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := o.log.AppendTurn(turn); err != nil {
		logx.Error().Err(err).Str("turn_id", turnID).Msg("failed to log interaction")
	}
	return final, turnID
}
