package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// ReadFileTool returns file contents verbatim. Paths are taken as given
// (after home expansion): this is a single-user local tool and the model is
// trusted with the filesystem it runs on.
type ReadFileTool struct{}

func NewReadFileTool() *ReadFileTool {
	return &ReadFileTool{}
}

func (t *ReadFileTool) Name() string {
	return "read_file"
}

func (t *ReadFileTool) Execute(_ context.Context, args map[string]any, _ string) (string, error) {
	var in struct {
		Path string `json:"path"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	path := expandHome(in.Path)
	if _, err := os.Stat(path); err != nil {
		return "File not found", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// expandHome resolves a leading ~ to the current user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
