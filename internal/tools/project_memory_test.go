package tools

import (
	"path/filepath"
	"strings"
	"testing"

	"assistant/internal/store"
)

func newMemoryTool(t *testing.T) *ProjectMemoryTool {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewProjectMemoryTool(s)
}

func TestProjectMemorySaveAndFetch(t *testing.T) {
	m := newMemoryTool(t)

	out := mustExec(t, m, map[string]any{"action": "save", "note": "deploy uses port 8000", "tag": "infra"}, "s1")
	if out != "Saved to project memory." {
		t.Fatalf("got %q", out)
	}
	mustExec(t, m, map[string]any{"action": "save", "note": "standup is at ten"}, "s2")

	out = mustExec(t, m, map[string]any{"action": "fetch", "query": "port", "limit": 1}, "s1")
	if out != "[infra] (session: s1) deploy uses port 8000" {
		t.Fatalf("got %q", out)
	}
}

func TestProjectMemorySaveRequiresNote(t *testing.T) {
	m := newMemoryTool(t)
	out := mustExec(t, m, map[string]any{"action": "save", "note": "  "}, "s")
	if out != "No note provided to store." {
		t.Fatalf("got %q", out)
	}
}

func TestProjectMemoryFetchEmpty(t *testing.T) {
	m := newMemoryTool(t)
	out := mustExec(t, m, map[string]any{"action": "fetch", "query": "anything"}, "s")
	if out != "Project memory is empty." {
		t.Fatalf("got %q", out)
	}
}

func TestProjectMemoryRankingIsStable(t *testing.T) {
	m := newMemoryTool(t)
	mustExec(t, m, map[string]any{"action": "save", "note": "alpha fact"}, "s")
	mustExec(t, m, map[string]any{"action": "save", "note": "beta fact"}, "s")
	mustExec(t, m, map[string]any{"action": "save", "note": "gamma fact"}, "s")

	// All three score equally, so insertion order must hold across fetches.
	want := "(session: s) alpha fact\n(session: s) beta fact\n(session: s) gamma fact"
	for i := 0; i < 3; i++ {
		out := mustExec(t, m, map[string]any{"action": "fetch", "query": "fact"}, "s")
		if out != want {
			t.Fatalf("fetch %d: got %q, want %q", i, out, want)
		}
	}
}

func TestProjectMemoryLimitZeroClampsToOne(t *testing.T) {
	m := newMemoryTool(t)
	mustExec(t, m, map[string]any{"action": "save", "note": "first fact"}, "s")
	mustExec(t, m, map[string]any{"action": "save", "note": "second fact"}, "s")

	// Absent limit defaults to 5; an explicit 0 clamps to 1.
	out := mustExec(t, m, map[string]any{"action": "fetch", "query": "fact"}, "s")
	if !strings.Contains(out, "first fact") || !strings.Contains(out, "second fact") {
		t.Fatalf("default limit should return both notes, got %q", out)
	}
	out = mustExec(t, m, map[string]any{"action": "fetch", "query": "fact", "limit": 0}, "s")
	if out != "(session: s) first fact" {
		t.Fatalf("explicit zero limit should return exactly one note, got %q", out)
	}
}

func TestProjectMemoryFetchNoQueryReturnsNotes(t *testing.T) {
	m := newMemoryTool(t)
	mustExec(t, m, map[string]any{"action": "save", "note": "remember me"}, "s")

	out := mustExec(t, m, map[string]any{"action": "fetch"}, "s")
	if !strings.Contains(out, "remember me") {
		t.Fatalf("empty query should still list notes, got %q", out)
	}
}

func TestProjectMemoryUnknownAction(t *testing.T) {
	m := newMemoryTool(t)
	out := mustExec(t, m, map[string]any{"action": "purge"}, "s")
	if out != "Unknown project_memory action" {
		t.Fatalf("got %q", out)
	}
}
