package session

import (
	"context"
	"sync"

	"assistant/internal/chat"
)

// MemoryStore keeps history in process memory, one mutex per session key so
// concurrent requests for the same session serialize their read-modify-write
// while distinct sessions never contend.
type MemoryStore struct {
	max      int
	mu       sync.Mutex // guards the sessions map itself
	sessions map[string]*sessionHistory
}

type sessionHistory struct {
	mu        sync.Mutex
	exchanges []chat.Exchange
}

// NewMemoryStore creates an in-memory store retaining at most max exchanges
// per session.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = 10
	}
	return &MemoryStore{max: max, sessions: make(map[string]*sessionHistory)}
}

func (s *MemoryStore) get(sessionID string) *sessionHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.sessions[sessionID]
	if !ok {
		h = &sessionHistory{}
		s.sessions[sessionID] = h
	}
	return h
}

func (s *MemoryStore) History(_ context.Context, sessionID string) ([]chat.Exchange, error) {
	h := s.get(sessionID)
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]chat.Exchange, len(h.exchanges))
	copy(out, h.exchanges)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, ex chat.Exchange) error {
	h := s.get(sessionID)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exchanges = append(h.exchanges, ex)
	if len(h.exchanges) > s.max {
		h.exchanges = h.exchanges[len(h.exchanges)-s.max:]
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
