package tools

import (
	"context"
	"fmt"
	"sort"

	"assistant/internal/logx"
)

// Tool 单个辅助操作。Execute 的 error 只在 dispatcher 内部流转，
// 最终都会被转成字符串结果。
// Tool is one auxiliary operation. Errors from Execute never escape the
// dispatcher; they are stringified into the result the model sees.
type Tool interface {
	Name() string
	Execute(ctx context.Context, args map[string]any, sessionID string) (string, error)
}

// Dispatcher resolves tool names and guarantees a string result for every
// call: unknown tools, argument problems, tool errors, and even panics all
// come back as descriptive text the orchestrator can fold into the next
// prompt.
type Dispatcher struct {
	tools map[string]Tool
}

func NewDispatcher(ts ...Tool) *Dispatcher {
	m := make(map[string]Tool, len(ts))
	for _, t := range ts {
		m[t.Name()] = t
	}
	return &Dispatcher{tools: m}
}

// Names returns the registered tool names, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dispatcher) Has(name string) bool {
	_, ok := d.tools[name]
	return ok
}

// Dispatch executes the named tool scoped to the requesting session.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any, sessionID string) (result string) {
	t, ok := d.tools[name]
	if !ok {
		return fmt.Sprintf("Unknown tool: %s", name)
	}
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("tool", name).Any("panic", r).Msg("tool panicked")
			result = fmt.Sprintf("Tool error: %v", r)
		}
	}()
	res, err := t.Execute(ctx, args, sessionID)
	if err != nil {
		return fmt.Sprintf("Tool error: %v", err)
	}
	return res
}
