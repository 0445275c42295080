package provider

import "regexp"

// ansiPattern matches CSI escape sequences; ollama writes spinner frames and
// cursor moves to both stdout and stderr.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)

// StripANSI removes terminal control sequences from model output.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
