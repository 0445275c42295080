package interaction

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"assistant/internal/chat"
	"assistant/internal/logx"
)

// scanBufSize allows a single logged turn (long tool output included) to be
// read back as one scanner token.
const scanBufSize = 4 << 20

// ExportStats reports what a training export produced and consumed.
type ExportStats struct {
	Prepared     int
	Interactions int
	Feedback     int
}

// trainingRecord is one exported example: a prompt/completion pair plus the
// rating that selected it.
type trainingRecord struct {
	TurnID     string `json:"turn_id"`
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
	Rating     string `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	Model      string `json:"model,omitempty"`
	Session    string `json:"session,omitempty"`
}

// ExportTraining joins the interaction log with the feedback log. Every
// interaction with at least one feedback record yields one training record
// per feedback entry, so a turn rated twice is exported twice. The export
// file is rewritten from scratch on every call.
func (l *Log) ExportTraining() (ExportStats, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var stats ExportStats

	feedbackByTurn := make(map[string][]chat.Feedback)
	err := readLines(l.feedbackPath, func(line []byte) {
		var f chat.Feedback
		if err := json.Unmarshal(line, &f); err != nil {
			logx.Warn().Err(err).Msg("skipping undecodable feedback record")
			return
		}
		stats.Feedback++
		feedbackByTurn[f.TurnID] = append(feedbackByTurn[f.TurnID], f)
	})
	if err != nil {
		return ExportStats{}, "", err
	}

	out, err := os.Create(l.exportPath)
	if err != nil {
		return ExportStats{}, "", fmt.Errorf("create export file: %w", err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	err = readLines(l.interactionsPath, func(line []byte) {
		var t chat.Turn
		if err := json.Unmarshal(line, &t); err != nil {
			logx.Warn().Err(err).Msg("skipping undecodable interaction record")
			return
		}
		stats.Interactions++
		for _, f := range feedbackByTurn[t.TurnID] {
			rec := trainingRecord{
				TurnID:     t.TurnID,
				Prompt:     t.UserMessage,
				Completion: t.AssistantReply,
				Rating:     f.Rating,
				Comment:    f.Comment,
				Model:      t.Model,
				Session:    t.SessionID,
			}
			data, err := json.Marshal(rec)
			if err != nil {
				logx.Warn().Err(err).Str("turn_id", t.TurnID).Msg("skipping unencodable export record")
				continue
			}
			w.Write(data)
			w.WriteByte('\n')
			stats.Prepared++
		}
	})
	if err != nil {
		return ExportStats{}, "", err
	}
	if err := w.Flush(); err != nil {
		return ExportStats{}, "", fmt.Errorf("flush export file: %w", err)
	}
	return stats, l.exportPath, nil
}

// readLines feeds every line of a JSONL file to fn. A missing file is
// treated as empty.
func readLines(path string, fn func(line []byte)) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), scanBufSize)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		fn(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}
