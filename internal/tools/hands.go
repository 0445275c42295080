package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"assistant/internal/store"
)

// HandsTool manages named task collections ("hands"). A hand belongs to the
// session that created it but is visible to every session; resolution by
// name or id prefers the caller's own hand over a shared one.
type HandsTool struct {
	hands store.HandStore
	newID func() string
}

func NewHandsTool(hands store.HandStore) *HandsTool {
	return &HandsTool{hands: hands, newID: shortID}
}

// shortID is the 8-hex-char token used for hand and task ids.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (t *HandsTool) Name() string {
	return "hands"
}

type handsArgs struct {
	Action string `json:"action"`
	Name   string `json:"name"`
	Goal   string `json:"goal"`
	Hand   string `json:"hand"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Task   string `json:"task"`
	Status string `json:"status"`
}

func (t *HandsTool) Execute(ctx context.Context, args map[string]any, sessionID string) (string, error) {
	var in handsArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	action := strings.ToLower(in.Action)
	if action == "" {
		action = "list_hands"
	}
	switch action {
	case "create_hand":
		return t.createHand(ctx, in, sessionID)
	case "list_hands":
		return t.listHands(ctx, sessionID)
	case "add_task":
		return t.addTask(ctx, in, sessionID)
	case "list_tasks":
		return t.listTasks(ctx, in, sessionID)
	case "update_task":
		return t.updateTask(ctx, in, sessionID)
	case "remove_task":
		return t.removeTask(ctx, in, sessionID)
	default:
		return "Unknown hands action", nil
	}
}

// resolveHand matches identifier against hand ids and names
// case-insensitively. A hand owned by the requesting session wins over any
// other match; otherwise the first match in insertion order does.
func resolveHand(identifier string, hands []store.Hand, sessionID string) *store.Hand {
	if identifier == "" {
		return nil
	}
	ident := strings.ToLower(identifier)
	matches := func(h store.Hand) bool {
		return ident == strings.ToLower(h.ID) || ident == strings.ToLower(h.Name)
	}
	for i := range hands {
		if matches(hands[i]) && sessionID != "" && hands[i].Session == sessionID {
			return &hands[i]
		}
	}
	for i := range hands {
		if matches(hands[i]) {
			return &hands[i]
		}
	}
	return nil
}

func (t *HandsTool) createHand(ctx context.Context, in handsArgs, sessionID string) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "Hand name is required.", nil
	}
	id := t.newID()
	h := store.Hand{
		ID:      id,
		Name:    name,
		Goal:    strings.TrimSpace(in.Goal),
		Session: sessionID,
	}
	if err := t.hands.CreateHand(ctx, h); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created hand '%s' (id: %s).", name, id), nil
}

func (t *HandsTool) listHands(ctx context.Context, sessionID string) (string, error) {
	hands, err := t.hands.ListHands(ctx)
	if err != nil {
		return "", err
	}
	if len(hands) == 0 {
		return "No hands yet. Create one with action=create_hand.", nil
	}
	lines := make([]string, 0, len(hands))
	for _, h := range hands {
		scope := "shared"
		if sessionID != "" && h.Session == sessionID {
			scope = "session"
		}
		goal := h.Goal
		if goal == "" {
			goal = "n/a"
		}
		lines = append(lines, fmt.Sprintf("%s (id: %s, scope: %s) — goal: %s, tasks: %d",
			h.Name, h.ID, scope, goal, len(h.Tasks)))
	}
	return strings.Join(lines, "\n"), nil
}

func (t *HandsTool) addTask(ctx context.Context, in handsArgs, sessionID string) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "Task title is required.", nil
	}
	hands, err := t.hands.ListHands(ctx)
	if err != nil {
		return "", err
	}
	hand := resolveHand(in.Hand, hands, sessionID)
	if hand == nil {
		return "Hand not found.", nil
	}
	taskID := t.newID()
	task := store.Task{
		ID:     taskID,
		Title:  title,
		Detail: strings.TrimSpace(in.Detail),
		Status: "todo",
	}
	if err := t.hands.AddTask(ctx, hand.ID, task); err != nil {
		return "", err
	}
	return fmt.Sprintf("Task '%s' added to hand %s (task id: %s).", title, hand.Name, taskID), nil
}

func (t *HandsTool) listTasks(ctx context.Context, in handsArgs, sessionID string) (string, error) {
	hands, err := t.hands.ListHands(ctx)
	if err != nil {
		return "", err
	}
	hand := resolveHand(in.Hand, hands, sessionID)
	if hand == nil {
		return "Hand not found.", nil
	}
	if len(hand.Tasks) == 0 {
		return fmt.Sprintf("No tasks for %s (id: %s).", hand.Name, hand.ID), nil
	}
	lines := make([]string, 0, len(hand.Tasks))
	for _, task := range hand.Tasks {
		detail := ""
		if task.Detail != "" {
			detail = " — " + task.Detail
		}
		lines = append(lines, fmt.Sprintf("[%s] %s (id: %s)%s", task.Status, task.Title, task.ID, detail))
	}
	return strings.Join(lines, "\n"), nil
}

func (t *HandsTool) updateTask(ctx context.Context, in handsArgs, sessionID string) (string, error) {
	hands, err := t.hands.ListHands(ctx)
	if err != nil {
		return "", err
	}
	hand := resolveHand(in.Hand, hands, sessionID)
	if hand == nil {
		return "Hand not found.", nil
	}
	task := findTask(hand, in.Task)
	if task == nil {
		return "Task not found.", nil
	}

	if in.Status != "" {
		status := strings.ToLower(in.Status)
		switch status {
		case "todo", "doing", "done":
			task.Status = status
		default:
			// Invalid status leaves the stored task untouched.
			return "Status must be todo/doing/done.", nil
		}
	}
	if strings.TrimSpace(in.Detail) != "" {
		task.Detail = in.Detail
	}
	if err := t.hands.UpdateTask(ctx, hand.ID, *task); err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated task %s in hand %s to %s", task.ID, hand.Name, task.Status), nil
}

func (t *HandsTool) removeTask(ctx context.Context, in handsArgs, sessionID string) (string, error) {
	taskRef := strings.TrimSpace(in.Task)
	if taskRef == "" {
		return "Task reference is required.", nil
	}
	hands, err := t.hands.ListHands(ctx)
	if err != nil {
		return "", err
	}
	hand := resolveHand(in.Hand, hands, sessionID)
	if hand == nil {
		return "Hand not found.", nil
	}
	task := findTask(hand, taskRef)
	if task == nil {
		return "Task not found.", nil
	}
	if err := t.hands.RemoveTask(ctx, hand.ID, task.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed task %s from hand %s", taskRef, hand.Name), nil
}

// findTask matches a task reference against task ids and titles
// case-insensitively, first match wins.
func findTask(hand *store.Hand, ref string) *store.Task {
	if ref == "" {
		return nil
	}
	r := strings.ToLower(ref)
	for i := range hand.Tasks {
		if r == strings.ToLower(hand.Tasks[i].ID) || r == strings.ToLower(hand.Tasks[i].Title) {
			return &hand.Tasks[i]
		}
	}
	return nil
}
