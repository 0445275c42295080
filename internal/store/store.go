package store

import "context"

// NoteStore persists project-memory notes in insertion order.
type NoteStore interface {
	SaveNote(ctx context.Context, n Note) error
	// ListNotes returns every note, oldest first. Insertion order is the
	// tie-break order for ranked search, so it must be stable.
	ListNotes(ctx context.Context) ([]Note, error)
}

// HandStore persists hands and their tasks. Name/id resolution and result
// formatting live in the tools layer; this interface is plain CRUD.
type HandStore interface {
	CreateHand(ctx context.Context, h Hand) error
	// ListHands returns every hand with its tasks, both in insertion order.
	ListHands(ctx context.Context) ([]Hand, error)
	AddTask(ctx context.Context, handID string, t Task) error
	UpdateTask(ctx context.Context, handID string, t Task) error
	RemoveTask(ctx context.Context, handID, taskID string) error
}

// Store 笔记与 hands 的统一持久化接口
// Store combines both persistence concerns plus lifecycle.
type Store interface {
	NoteStore
	HandStore
	Close() error
}
