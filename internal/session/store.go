// Package session owns the rolling per-session conversation history.
//
// History is short-lived working context for prompt assembly, not durable
// state: the memory backend lives and dies with the process, the redis
// backend expires with its TTL. The durable record of every turn is the
// interaction log.
package session

import (
	"context"

	"assistant/internal/chat"
)

// Store 会话历史存取接口；截断纪律由实现负责
// Store is the history interface. Implementations own the truncation and
// locking discipline so the orchestrator does not have to.
type Store interface {
	// History returns the retained exchanges for the session, oldest first.
	// Unknown sessions return an empty history.
	History(ctx context.Context, sessionID string) ([]chat.Exchange, error)

	// Append adds one exchange and evicts the oldest entries beyond the
	// configured maximum (FIFO).
	Append(ctx context.Context, sessionID string, ex chat.Exchange) error
}
