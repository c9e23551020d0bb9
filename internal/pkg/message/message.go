// Package message lints commit messages against the Conventional Commits format.
package message

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValidCommitTypes contains all valid Conventional Commits types.
var ValidCommitTypes = []string{
	"feat", "fix", "docs", "style", "refactor",
	"test", "chore", "perf", "ci", "build", "revert",
}

// MaxSubjectLength is the recommended maximum length for commit subject lines.
const MaxSubjectLength = 72

// headerRegex splits a header into type, scope, breaking marker and subject.
// Format: <type>(<scope>)!: <subject>
var headerRegex = regexp.MustCompile(`^([A-Za-z]+)(?:\(([^()\r\n]*)\))?(!)?:\s*(.*)$`)

// CommitMessage is the parsed header of a commit message.
type CommitMessage struct {
	Type     string
	Scope    string
	Breaking bool
	Subject  string
	// Conventional is false when the header has no "<type>:" prefix.
	Conventional bool
}

// Parse reads the first line of text as a commit header.
func Parse(text string) *CommitMessage {
	header := strings.TrimSpace(strings.SplitN(strings.TrimSpace(text), "\n", 2)[0])

	m := headerRegex.FindStringSubmatch(header)
	if m == nil {
		return &CommitMessage{Subject: header}
	}
	return &CommitMessage{
		Type:         m[1],
		Scope:        m[2],
		Breaking:     m[3] == "!",
		Subject:      strings.TrimSpace(m[4]),
		Conventional: true,
	}
}

// FormatSubject formats the header line in Conventional Commits format.
func (cm *CommitMessage) FormatSubject() string {
	if !cm.Conventional {
		return cm.Subject
	}

	var sb strings.Builder
	sb.WriteString(cm.Type)
	if cm.Scope != "" {
		sb.WriteString("(" + cm.Scope + ")")
	}
	if cm.Breaking {
		sb.WriteString("!")
	}
	sb.WriteString(": " + cm.Subject)
	return sb.String()
}

// Warnings lists the ways the header departs from the convention.
// Warnings never block a commit.
func (cm *CommitMessage) Warnings() []string {
	var warnings []string

	switch {
	case !cm.Conventional:
		warnings = append(warnings, "message does not follow the Conventional Commits format")
	case !IsValidCommitType(cm.Type):
		warnings = append(warnings, fmt.Sprintf("unknown commit type %q (expected one of: %s)",
			cm.Type, strings.Join(ValidCommitTypes, ", ")))
	}

	if cm.Subject == "" {
		warnings = append(warnings, "missing commit subject")
	} else if strings.HasSuffix(cm.Subject, ".") {
		warnings = append(warnings, "subject should not end with a period")
	}

	if n := len([]rune(cm.FormatSubject())); n > MaxSubjectLength {
		warnings = append(warnings, fmt.Sprintf("subject line exceeds %d characters (%d chars)", MaxSubjectLength, n))
	}

	return warnings
}

// Validate parses text and returns its warnings.
func Validate(text string) []string {
	return Parse(text).Warnings()
}

// IsValidCommitType checks if the given type is a valid Conventional Commits type.
func IsValidCommitType(commitType string) bool {
	return slices.Contains(ValidCommitTypes, commitType)
}
