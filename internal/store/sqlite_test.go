package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "assistant.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNotesPreserveInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if err := s.SaveNote(ctx, Note{Note: text, Tag: "t", Session: "s1"}); err != nil {
			t.Fatal(err)
		}
	}

	notes, err := s.ListNotes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 3 {
		t.Fatalf("len(notes) = %d, want 3", len(notes))
	}
	if notes[0].Note != "first" || notes[2].Note != "third" {
		t.Fatalf("insertion order not preserved: %+v", notes)
	}
	if notes[0].CreatedAt == "" {
		t.Fatal("created_at not populated")
	}
}

func TestHandAndTaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hand := Hand{ID: "ab12cd34", Name: "Righty", Goal: "Ship tasks", Session: "s2"}
	if err := s.CreateHand(ctx, hand); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask(ctx, hand.ID, Task{ID: "t1", Title: "Write brief", Detail: "first draft"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask(ctx, hand.ID, Task{ID: "t2", Title: "Review"}); err != nil {
		t.Fatal(err)
	}

	hands, err := s.ListHands(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(hands) != 1 || len(hands[0].Tasks) != 2 {
		t.Fatalf("unexpected hands: %+v", hands)
	}
	if hands[0].Tasks[0].Status != "todo" {
		t.Fatalf("new task status = %q, want todo", hands[0].Tasks[0].Status)
	}

	if err := s.UpdateTask(ctx, hand.ID, Task{ID: "t1", Status: "done", Detail: "finalized"}); err != nil {
		t.Fatal(err)
	}
	hands, _ = s.ListHands(ctx)
	if hands[0].Tasks[0].Status != "done" || hands[0].Tasks[0].Detail != "finalized" {
		t.Fatalf("update not applied: %+v", hands[0].Tasks[0])
	}

	if err := s.RemoveTask(ctx, hand.ID, "t1"); err != nil {
		t.Fatal(err)
	}
	hands, _ = s.ListHands(ctx)
	if len(hands[0].Tasks) != 1 || hands[0].Tasks[0].ID != "t2" {
		t.Fatalf("remove not applied: %+v", hands[0].Tasks)
	}

	if err := s.RemoveTask(ctx, hand.ID, "missing"); err == nil {
		t.Fatal("removing a missing task should error")
	}
}

func TestTaskIDsUniquePerHand(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateHand(ctx, Hand{ID: "h1", Name: "Lefty"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask(ctx, "h1", Task{ID: "dup", Title: "one"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask(ctx, "h1", Task{ID: "dup", Title: "two"}); err == nil {
		t.Fatal("duplicate task id within a hand should be rejected")
	}
}
