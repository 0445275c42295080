package interaction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"assistant/internal/chat"
)

const (
	interactionsFile = "interactions.jsonl"
	feedbackFile     = "feedback.jsonl"
	exportFile       = "training_export.jsonl"
)

// Log 持久化每轮交互与用户反馈，追加式 JSONL。
// Log persists turns and user feedback as append-only JSONL files under the
// data directory. One mutex covers both files; writes are short.
type Log struct {
	mu sync.Mutex

	interactionsPath string
	feedbackPath     string
	exportPath       string
}

// NewLog creates the data directory if needed and returns a logger rooted
// there.
func NewLog(dataDir string) (*Log, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}
	return &Log{
		interactionsPath: filepath.Join(dataDir, interactionsFile),
		feedbackPath:     filepath.Join(dataDir, feedbackFile),
		exportPath:       filepath.Join(dataDir, exportFile),
	}, nil
}

// AppendTurn records one completed chat turn.
func (l *Log) AppendTurn(t chat.Turn) error {
	return l.appendJSON(l.interactionsPath, t)
}

// AppendFeedback records one rating for a previously logged turn.
func (l *Log) AppendFeedback(f chat.Feedback) error {
	return l.appendJSON(l.feedbackPath, f)
}

func (l *Log) appendJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}
