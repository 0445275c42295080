package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"assistant/internal/store"
)

// ProjectMemoryTool saves free-text notes and retrieves them by a ranked
// substring search. Notes are append-only; there is no update or delete.
type ProjectMemoryTool struct {
	notes store.NoteStore
}

func NewProjectMemoryTool(notes store.NoteStore) *ProjectMemoryTool {
	return &ProjectMemoryTool{notes: notes}
}

func (t *ProjectMemoryTool) Name() string {
	return "project_memory"
}

type projectMemoryArgs struct {
	Action string `json:"action"`
	Note   string `json:"note"`
	Tag    string `json:"tag"`
	Query  string `json:"query"`
	// Pointer so an explicit 0 (clamped to 1) is distinct from absent (5).
	Limit *int `json:"limit"`
}

func (t *ProjectMemoryTool) Execute(ctx context.Context, args map[string]any, sessionID string) (string, error) {
	var in projectMemoryArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	action := strings.ToLower(in.Action)
	if action == "" {
		action = "fetch"
	}
	switch action {
	case "save":
		return t.save(ctx, in, sessionID)
	case "fetch":
		return t.fetch(ctx, in, sessionID)
	default:
		return "Unknown project_memory action", nil
	}
}

func (t *ProjectMemoryTool) save(ctx context.Context, in projectMemoryArgs, sessionID string) (string, error) {
	note := strings.TrimSpace(in.Note)
	if note == "" {
		return "No note provided to store.", nil
	}
	if err := t.notes.SaveNote(ctx, store.Note{Note: note, Tag: in.Tag, Session: sessionID}); err != nil {
		return "", err
	}
	return "Saved to project memory.", nil
}

func (t *ProjectMemoryTool) fetch(ctx context.Context, in projectMemoryArgs, sessionID string) (string, error) {
	entries, err := t.notes.ListNotes(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "Project memory is empty.", nil
	}

	query := strings.ToLower(in.Query)
	score := func(n store.Note) int {
		s := 0
		if query != "" && strings.Contains(strings.ToLower(n.Note), query) {
			s += 2
		}
		if query != "" && strings.Contains(strings.ToLower(n.Tag), query) {
			s++
		}
		if sessionID != "" && n.Session == sessionID {
			s++
		}
		return s
	}

	// Stable sort: among equal scores the original insertion order holds, so
	// repeated fetches over an unchanged store return the same ranking.
	ranked := make([]store.Note, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})

	limit := 5
	if in.Limit != nil {
		limit = *in.Limit
		if limit < 1 {
			limit = 1
		}
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}

	lines := make([]string, 0, limit)
	for _, n := range ranked[:limit] {
		var b strings.Builder
		if n.Tag != "" {
			fmt.Fprintf(&b, "[%s] ", n.Tag)
		}
		if n.Session != "" {
			fmt.Fprintf(&b, "(session: %s) ", n.Session)
		}
		b.WriteString(n.Note)
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}
