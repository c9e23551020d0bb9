package ai

import (
	"regexp"
	"strings"
)

// PlaceholderTitle is used when a response carries no title label.
const PlaceholderTitle = "Generated PR Description"

var (
	// leadingFenceRegex matches an opening fence with an optional language tag.
	leadingFenceRegex = regexp.MustCompile("^```[\\w+.-]*[ \\t]*(?:\\r?\\n|$)")
	// trailingFenceRegex matches a closing fence on its own final line.
	trailingFenceRegex = regexp.MustCompile("(?:^|\\r?\\n)[ \\t]*```[ \\t]*$")

	// conventionalHeaderRegex matches a conventional commit header line.
	// Format: <type>(<scope>)!: <subject>
	conventionalHeaderRegex = regexp.MustCompile(`^[a-z]+(\([^()\r\n]*\))?!?: \S`)

	// titleLabelRegex matches "PR Title:", "**PR Title:**", "Title:" and similar.
	titleLabelRegex = regexp.MustCompile(`(?i)^\s*(?:\*\*)?(?:PR\s+)?Title(?:\*\*)?\s*:(?:\*\*)?(.*)$`)
	// descriptionLabelRegex matches "PR Description:" and the same variants.
	descriptionLabelRegex = regexp.MustCompile(`(?i)^\s*(?:\*\*)?(?:PR\s+)?Description(?:\*\*)?\s*:(?:\*\*)?(.*)$`)
)

// CleanMessage strips code fences and any commentary before a conventional
// commit header. CleanMessage(CleanMessage(x)) == CleanMessage(x) for every x.
func CleanMessage(raw string) string {
	text := raw
	for {
		next := cleanOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

// cleanOnce applies one pass. Every pass only removes text, so iterating it
// reaches a fixed point.
func cleanOnce(text string) string {
	text = strings.TrimSpace(text)
	text = leadingFenceRegex.ReplaceAllString(text, "")
	text = trailingFenceRegex.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if conventionalHeaderRegex.MatchString(strings.TrimRight(line, "\r")) {
			if i > 0 {
				text = strings.Join(lines[i:], "\n")
			}
			break
		}
	}
	return text
}

// ParseTitleAndBody splits a pull request response into a title and a body.
// The title label line is removed whole; a description label is removed and
// any text after it on the same line stays in the body. Without a title label
// the title is PlaceholderTitle and the body is the cleaned response.
func ParseTitleAndBody(raw string) (title, body string) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	titleIdx := -1
	for i, line := range lines {
		if m := titleLabelRegex.FindStringSubmatch(line); m != nil {
			titleIdx = i
			title = strings.TrimSpace(m[1])
			break
		}
	}
	if titleIdx < 0 {
		return PlaceholderTitle, CleanMessage(raw)
	}
	if title == "" {
		title = PlaceholderTitle
	}

	rest := make([]string, 0, len(lines)-1)
	rest = append(rest, lines[:titleIdx]...)
	rest = append(rest, lines[titleIdx+1:]...)

	for i, line := range rest {
		if m := descriptionLabelRegex.FindStringSubmatch(line); m != nil {
			if remainder := strings.TrimSpace(m[1]); remainder != "" {
				rest[i] = remainder
			} else {
				rest = append(rest[:i], rest[i+1:]...)
			}
			break
		}
	}

	return title, CleanMessage(strings.Join(rest, "\n"))
}

// FirstLine returns the first non-blank line of text, trimmed.
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
