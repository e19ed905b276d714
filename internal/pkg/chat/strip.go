package chat

import (
	"regexp"
	"strings"
)

var fenceLine = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z0-9_+-]*[ \t]*\r?\n?")

// StripCodeFences removes markdown code-block markers and keeps the text between them.
func StripCodeFences(s string) string {
	s = fenceLine.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
