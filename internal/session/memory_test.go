package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"assistant/internal/chat"
)

func TestMemoryStoreFIFOEviction(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		ex := chat.Exchange{User: fmt.Sprintf("q%d", i), Assistant: fmt.Sprintf("a%d", i)}
		if err := store.Append(ctx, "s1", ex); err != nil {
			t.Fatal(err)
		}
	}

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	// oldest evicted first: q1, q2 gone
	if history[0].User != "q3" || history[2].User != "q5" {
		t.Fatalf("unexpected retained window: %+v", history)
	}
}

func TestMemoryStoreSessionsIsolated(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", chat.Exchange{User: "hello", Assistant: "hi"}); err != nil {
		t.Fatal(err)
	}

	other, err := store.History(ctx, "s2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("fresh session should have empty history, got %+v", other)
	}
}

func TestMemoryStoreHistoryReturnsCopy(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()
	if err := store.Append(ctx, "s1", chat.Exchange{User: "q", Assistant: "a"}); err != nil {
		t.Fatal(err)
	}

	first, _ := store.History(ctx, "s1")
	first[0].User = "mutated"

	second, _ := store.History(ctx, "s1")
	if second[0].User != "q" {
		t.Fatalf("History must return a copy, stored entry became %q", second[0].User)
	}
}

func TestMemoryStoreConcurrentAppendsBounded(t *testing.T) {
	const max = 10
	store := NewMemoryStore(max)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Append(ctx, "shared", chat.Exchange{User: fmt.Sprintf("q%d", i), Assistant: "a"})
		}(i)
	}
	wg.Wait()

	history, err := store.History(ctx, "shared")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != max {
		t.Fatalf("history length = %d, want %d", len(history), max)
	}
}
