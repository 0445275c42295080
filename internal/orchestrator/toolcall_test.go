package orchestrator

import "testing"

func TestParseToolRequest(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		ok   bool
		tool string
	}{
		{"plain text", "The port is 8000.", false, ""},
		{"valid call", `{"tool": "read_file", "args": {"path": "notes.txt"}}`, true, "read_file"},
		{"valid with whitespace", "  \n{\"tool\": \"echo\", \"args\": {}}\n", true, "echo"},
		{"missing args", `{"tool": "echo"}`, true, "echo"},
		{"empty tool", `{"tool": "", "args": {}}`, false, ""},
		{"no tool field", `{"args": {}}`, false, ""},
		{"malformed json", `{"tool": "echo",`, false, ""},
		{"json embedded in prose", `Sure: {"tool": "echo", "args": {}}`, false, ""},
		{"trailing prose", `{"tool": "echo", "args": {}} and then some`, false, ""},
		{"json array", `[{"tool": "echo"}]`, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, ok := ParseToolRequest(tc.raw)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && req.Tool != tc.tool {
				t.Fatalf("tool = %q, want %q", req.Tool, tc.tool)
			}
			if ok && req.Args == nil {
				t.Fatal("args should never be nil for a parsed request")
			}
		})
	}
}
