package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore 基于 SQLite (WAL 模式) 的持久化实现
// SQLiteStore implements Store using SQLite with WAL mode. It replaces the
// whole-file JSON load/rewrite cycle of earlier versions: writers no longer
// lose each other's updates, readers see committed rows only.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates and initializes the database file.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		note       TEXT NOT NULL,
		tag        TEXT NOT NULL DEFAULT '',
		session    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hands (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		goal       TEXT NOT NULL DEFAULT '',
		session    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT NOT NULL,
		hand_id    TEXT NOT NULL REFERENCES hands(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		detail     TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'todo',
		created_at TEXT NOT NULL,
		PRIMARY KEY(hand_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_hand ON tasks(hand_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// --- Note operations ---

func (s *SQLiteStore) SaveNote(ctx context.Context, n Note) error {
	if strings.TrimSpace(n.CreatedAt) == "" {
		n.CreatedAt = nowUTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (note, tag, session, created_at)
		VALUES (?, ?, ?, ?)`,
		n.Note, n.Tag, n.Session, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListNotes(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT note, tag, session, created_at FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.Note, &n.Tag, &n.Session, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// --- Hand operations ---

func (s *SQLiteStore) CreateHand(ctx context.Context, h Hand) error {
	if strings.TrimSpace(h.CreatedAt) == "" {
		h.CreatedAt = nowUTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hands (id, name, goal, session, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Goal, h.Session, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert hand: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListHands(ctx context.Context) ([]Hand, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, goal, session, created_at FROM hands ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list hands: %w", err)
	}
	defer rows.Close()

	var hands []Hand
	for rows.Next() {
		var h Hand
		if err := rows.Scan(&h.ID, &h.Name, &h.Goal, &h.Session, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hand: %w", err)
		}
		hands = append(hands, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range hands {
		tasks, err := s.listTasks(ctx, hands[i].ID)
		if err != nil {
			return nil, err
		}
		hands[i].Tasks = tasks
	}
	return hands, nil
}

func (s *SQLiteStore) listTasks(ctx context.Context, handID string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, detail, status, created_at
		FROM tasks WHERE hand_id=? ORDER BY rowid`, handID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Detail, &t.Status, &t.Created); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) AddTask(ctx context.Context, handID string, t Task) error {
	if strings.TrimSpace(t.Created) == "" {
		t.Created = nowUTC()
	}
	if strings.TrimSpace(t.Status) == "" {
		t.Status = "todo"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, hand_id, title, detail, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, handID, t.Title, t.Detail, t.Status, t.Created)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, handID string, t Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET status=?, detail=? WHERE hand_id=? AND id=?`,
		t.Status, t.Detail, handID, t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task not found: %s", t.ID)
	}
	return nil
}

func (s *SQLiteStore) RemoveTask(ctx context.Context, handID, taskID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE hand_id=? AND id=?`, handID, taskID)
	if err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task not found: %s", taskID)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
