package tools

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileReturnsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReadFileTool()
	out := mustExec(t, r, map[string]any{"path": path}, "s")
	if out != "line one\nline two\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReadFileMissing(t *testing.T) {
	r := NewReadFileTool()
	out := mustExec(t, r, map[string]any{"path": filepath.Join(t.TempDir(), "absent.txt")}, "s")
	if out != "File not found" {
		t.Fatalf("got %q", out)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/x.txt"); got != filepath.Join(home, "x.txt") {
		t.Fatalf("got %q", got)
	}
	if got := expandHome("/abs/x.txt"); got != "/abs/x.txt" {
		t.Fatalf("got %q", got)
	}
	// ~user form is not expanded.
	if got := expandHome("~other/x.txt"); got != "~other/x.txt" {
		t.Fatalf("got %q", got)
	}
}
