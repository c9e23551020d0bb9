// Package ui provides interactive terminal UI components for aigh.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	Stop()
}

// Manager defines the interface for UI operations.
type Manager interface {
	DisplayCommitMessage(message string, warnings []string)
	DisplayPullRequest(title, body string)
	// EditText lets the user change content. Empty output means the user cleared it.
	EditText(label, content string) (string, error)
	PromptConfirm(message string) (bool, error)
	ShowSpinner(text string) Spinner
	ShowError(err error)
	ShowWarning(message string)
	ShowInfo(message string)
	ShowSuccess(message string)
}

// DefaultManager implements the Manager interface using charmbracelet libraries.
type DefaultManager struct {
	out          io.Writer
	colorEnabled bool
	editor       string
	styles       *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title      lipgloss.Style
	subject    lipgloss.Style
	muted      lipgloss.Style
	success    lipgloss.Style
	warning    lipgloss.Style
	errorStyle lipgloss.Style
	info       lipgloss.Style
}

// NewDefaultManager creates a DefaultManager. An empty editor defers to $VISUAL and $EDITOR.
func NewDefaultManager(colorEnabled bool, editor string) *DefaultManager {
	return &DefaultManager{
		out:          os.Stdout,
		colorEnabled: colorEnabled,
		editor:       editor,
		styles:       newStyles(colorEnabled),
	}
}

// SetOutput redirects display output.
func (m *DefaultManager) SetOutput(w io.Writer) {
	m.out = w
}

func newStyles(colorEnabled bool) *styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &styles{
			title: plain, subject: plain, muted: plain, success: plain,
			warning: plain, errorStyle: plain, info: plain,
		}
	}

	return &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		subject: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
	}
}

// DisplayCommitMessage shows the proposed commit message and any lint warnings.
func (m *DefaultManager) DisplayCommitMessage(message string, warnings []string) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.title.Render("Generated Commit Message"))
	fmt.Fprintln(m.out, strings.Repeat("-", 50))
	fmt.Fprintln(m.out, m.styles.subject.Render(message))
	fmt.Fprintln(m.out, strings.Repeat("-", 50))
	for _, w := range warnings {
		fmt.Fprintln(m.out, m.styles.warning.Render("! "+w))
	}
	fmt.Fprintln(m.out)
}

// DisplayPullRequest shows the proposed title and renders the body as markdown.
func (m *DefaultManager) DisplayPullRequest(title, body string) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.title.Render("Generated PR Title:"))
	fmt.Fprintln(m.out, m.styles.subject.Render(title))
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.title.Render("Generated PR Description:"))
	fmt.Fprintln(m.out, renderMarkdown(body, m.colorEnabled))
}

// renderMarkdown renders body for the terminal, returning it unchanged if glamour fails.
func renderMarkdown(body string, colorEnabled bool) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if colorEnabled {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return strings.TrimRight(out, "\n")
}

// EditText opens content in the external editor, or the inline editor when none is set.
func (m *DefaultManager) EditText(label, content string) (string, error) {
	if editor := ResolveEditor(m.editor); editor != "" {
		edited, err := EditWithExternalEditor(editor, content)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(edited), nil
	}

	edited, err := editWithInlineEditor(label, content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(edited), nil
}

// ShowSpinner creates and returns a spinner for loading states.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(text)
}

// ShowError displays an error message to the user.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(m.out, m.styles.errorStyle.Render("Error: "+err.Error()))
}

// ShowWarning displays a warning.
func (m *DefaultManager) ShowWarning(message string) {
	fmt.Fprintln(m.out, m.styles.warning.Render(message))
}

// ShowInfo displays an informational line.
func (m *DefaultManager) ShowInfo(message string) {
	fmt.Fprintln(m.out, m.styles.info.Render(message))
}

// ShowSuccess displays a success message to the user.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Fprintln(m.out, m.styles.success.Render("[OK] "+message))
}

// PromptConfirm prompts the user for a yes/no confirmation using Bubble Tea.
// Enter accepts the default, which is yes.
func (m *DefaultManager) PromptConfirm(message string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(message))

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	result := finalModel.(confirmModel)
	return result.confirmed, nil
}

// confirmModel is the Bubble Tea model for yes/no confirmation.
type confirmModel struct {
	message   string
	cursor    int // 0 = Yes, 1 = No
	confirmed bool
	done      bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{
		message: message,
		cursor:  0,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "n", "N", "esc":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "left", "h":
			m.cursor = 0
		case "right", "l":
			m.cursor = 1
		case "tab":
			m.cursor = 1 - m.cursor
		case "enter", " ":
			m.confirmed = m.cursor == 0
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	yesStyle, noStyle := normalStyle, normalStyle
	if m.cursor == 0 {
		yesStyle = selectedStyle
	} else {
		noStyle = selectedStyle
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.message))
	sb.WriteString(" ")
	sb.WriteString(yesStyle.Render("[Y]es"))
	sb.WriteString(" / ")
	sb.WriteString(noStyle.Render("[N]o"))
	return sb.String()
}

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	program *tea.Program
	model   *spinnerModel
	done    chan struct{}
	mu      sync.Mutex
}

// spinnerModel is the Bubble Tea model for simple spinner.
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerQuitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

func newBubbleSpinner(text string) *bubbleSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &bubbleSpinner{
		model: &spinnerModel{spinner: s, text: text},
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The spinner never reads input, so it must not compete with prompts for stdin.
	s.program = tea.NewProgram(s.model, tea.WithInput(nil), tea.WithOutput(os.Stderr))
	s.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(s.program, s.done)
}

func (s *bubbleSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program == nil {
		return
	}
	s.program.Send(spinnerQuitMsg{})
	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
		s.program.Kill()
	}
	s.program = nil
}

// NonInteractiveManager implements Manager for non-interactive mode (--yes flag).
type NonInteractiveManager struct {
	out    io.Writer
	styles *styles
}

// NewNonInteractiveManager creates a new NonInteractiveManager.
func NewNonInteractiveManager(colorEnabled bool) *NonInteractiveManager {
	return &NonInteractiveManager{
		out:    os.Stdout,
		styles: newStyles(colorEnabled),
	}
}

// SetOutput redirects display output.
func (m *NonInteractiveManager) SetOutput(w io.Writer) {
	m.out = w
}

// DisplayCommitMessage prints the message and warnings without decoration.
func (m *NonInteractiveManager) DisplayCommitMessage(message string, warnings []string) {
	fmt.Fprintln(m.out, message)
	for _, w := range warnings {
		fmt.Fprintln(m.out, m.styles.warning.Render("! "+w))
	}
}

// DisplayPullRequest prints the title and raw body.
func (m *NonInteractiveManager) DisplayPullRequest(title, body string) {
	fmt.Fprintln(m.out, title)
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, body)
}

// EditText returns content unchanged in non-interactive mode.
func (m *NonInteractiveManager) EditText(_, content string) (string, error) {
	return content, nil
}

// PromptConfirm always returns true in non-interactive mode.
func (m *NonInteractiveManager) PromptConfirm(string) (bool, error) {
	return true, nil
}

// ShowSpinner returns a no-op spinner in non-interactive mode.
func (m *NonInteractiveManager) ShowSpinner(string) Spinner {
	return noopSpinner{}
}

// ShowError displays an error message.
func (m *NonInteractiveManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(m.out, m.styles.errorStyle.Render("Error: "+err.Error()))
}

// ShowWarning displays a warning.
func (m *NonInteractiveManager) ShowWarning(message string) {
	fmt.Fprintln(m.out, m.styles.warning.Render(message))
}

// ShowInfo displays an informational line.
func (m *NonInteractiveManager) ShowInfo(message string) {
	fmt.Fprintln(m.out, message)
}

// ShowSuccess displays a success message.
func (m *NonInteractiveManager) ShowSuccess(message string) {
	fmt.Fprintln(m.out, m.styles.success.Render(message))
}

// noopSpinner is a no-op implementation of Spinner.
type noopSpinner struct{}

func (noopSpinner) Start() {}
func (noopSpinner) Stop()  {}
