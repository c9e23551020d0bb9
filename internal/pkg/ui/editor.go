package ui

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// editFileName is the scratch file shown in the editor; the .md suffix enables highlighting.
const editFileName = "AIGH_EDITMSG.md"

// ResolveEditor returns explicit, or $VISUAL, or $EDITOR. Empty means no external editor.
func ResolveEditor(explicit string) string {
	for _, candidate := range []string{explicit, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return ""
}

// EditorCommand splits an editor setting into a program and arguments for path.
// GUI editors that return immediately get their wait flag.
func EditorCommand(editor, path string) (string, []string) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return "", nil
	}

	name, args := fields[0], fields[1:]
	if needsWaitFlag(name) && !containsWaitFlag(args) {
		args = append(args, "--wait")
	}
	return name, append(args, path)
}

func needsWaitFlag(program string) bool {
	switch filepath.Base(program) {
	case "code", "code-insiders", "codium", "cursor", "subl", "zed":
		return true
	}
	return false
}

func containsWaitFlag(args []string) bool {
	for _, a := range args {
		if a == "--wait" || a == "-w" {
			return true
		}
	}
	return false
}

// EditWithExternalEditor writes content to a temp file, runs the editor with the
// terminal attached and returns what the user saved.
func EditWithExternalEditor(editor, content string) (string, error) {
	dir, err := os.MkdirTemp("", "aigh-edit-*")
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to create temp directory")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, editFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to write temp file")
	}

	name, args := EditorCommand(editor, path)
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		apperrors.Warn("Editor %s failed: %v", editor, err)
		return "", apperrors.NewEditorError(editor, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to read edited file")
	}
	return string(edited), nil
}

// editWithInlineEditor uses a huh text area when no external editor is configured.
func editWithInlineEditor(label, content string) (string, error) {
	edited := content

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(label).
				Description("Edit below. Press Tab then Enter to save. Ctrl+C to cancel.").
				Value(&edited).
				CharLimit(0),
		),
	)

	if err := form.Run(); err != nil {
		return "", apperrors.NewEditorError("inline", err)
	}
	return edited, nil
}
