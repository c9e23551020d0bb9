package git

import (
	"fmt"
	"strings"
)

// DiffSummary counts what a unified diff touches.
type DiffSummary struct {
	Files     []string
	Additions int
	Deletions int
}

// String renders the summary the way git's --shortstat does.
func (s DiffSummary) String() string {
	noun := "files"
	if len(s.Files) == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%d %s changed, +%d -%d", len(s.Files), noun, s.Additions, s.Deletions)
}

// Summarize parses diff text without invoking git.
func Summarize(diff string) DiffSummary {
	var s DiffSummary
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			s.Files = append(s.Files, extractFilePath(line))
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// file headers
		case strings.HasPrefix(line, "+"):
			s.Additions++
		case strings.HasPrefix(line, "-"):
			s.Deletions++
		}
	}
	return s
}

// extractFilePath extracts the file path from a diff header line.
// Format: "diff --git a/path/to/file b/path/to/file"
func extractFilePath(line string) string {
	line = strings.TrimPrefix(line, "diff --git ")

	parts := strings.Split(line, " b/")
	if len(parts) >= 2 {
		return parts[len(parts)-1]
	}

	// Fallback: try to extract from "a/path"
	if strings.HasPrefix(line, "a/") {
		parts = strings.SplitN(line, " ", 2)
		return strings.TrimPrefix(parts[0], "a/")
	}

	return line
}
