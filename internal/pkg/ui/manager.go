// Package ui provides the interactive terminal components of aicommit.
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
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	Stop()
	UpdateText(text string)
}

// Manager defines the interface for status output.
type Manager interface {
	DisplayMessage(message string)
	ShowSpinner(text string) Spinner
	ShowError(err error)
	ShowSuccess(message string)
	ShowInfo(message string)
}

// DefaultManager implements the Manager interface using charmbracelet libraries.
type DefaultManager struct {
	out     io.Writer
	errOut  io.Writer
	animate bool
	styles  *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title      lipgloss.Style
	subject    lipgloss.Style
	rule       lipgloss.Style
	success    lipgloss.Style
	errorStyle lipgloss.Style
	info       lipgloss.Style
}

// NewDefaultManager creates a DefaultManager writing status to stdout and
// errors to stderr. The spinner animates only when stdout is a terminal.
func NewDefaultManager(colorEnabled bool) *DefaultManager {
	return newManager(os.Stdout, os.Stderr, colorEnabled, IsTerminal(os.Stdout))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newManager(out, errOut io.Writer, colorEnabled, animate bool) *DefaultManager {
	return &DefaultManager{
		out:     out,
		errOut:  errOut,
		animate: animate,
		styles:  newStyles(colorEnabled),
	}
}

func newStyles(colorEnabled bool) *styles {
	if !colorEnabled {
		return &styles{
			title:      lipgloss.NewStyle(),
			subject:    lipgloss.NewStyle(),
			rule:       lipgloss.NewStyle(),
			success:    lipgloss.NewStyle(),
			errorStyle: lipgloss.NewStyle(),
			info:       lipgloss.NewStyle(),
		}
	}

	return &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		subject: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		rule: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
	}
}

// DisplayMessage shows the proposed commit message.
func (m *DefaultManager) DisplayMessage(message string) {
	rule := m.styles.rule.Render(strings.Repeat("-", 50))

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.title.Render("Proposed commit message:"))
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.subject.Render(message))
	fmt.Fprintln(m.out, rule)
}

// ShowSpinner creates a spinner for loading states. It does not animate
// when the manager writes somewhere other than the terminal.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	if !m.animate {
		return &lineSpinner{out: m.out, text: text}
	}
	return newBubbleSpinner(text)
}

// ShowError writes a formatted error to the error output.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(m.errOut, m.styles.errorStyle.Render(apperrors.FormatError(err)))
}

// ShowSuccess displays a success message to the user.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.success.Render("[OK] "+message))
}

// ShowInfo displays an informational status line.
func (m *DefaultManager) ShowInfo(message string) {
	fmt.Fprintln(m.out, m.styles.info.Render(message))
}

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	text    string
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

// spinnerTextMsg is sent to update spinner text from outside.
type spinnerTextMsg struct {
	text string
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTextMsg:
		m.text = msg.text
		return m, nil
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
		text: text,
		model: &spinnerModel{
			spinner: s,
			text:    text,
		},
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		return
	}

	// No input handling: the prompt that follows owns stdin.
	s.program = tea.NewProgram(s.model, tea.WithInput(nil))
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		_, _ = s.program.Run()
	}()
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

func (s *bubbleSpinner) UpdateText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	if s.program != nil {
		s.program.Send(spinnerTextMsg{text: text})
	}
}

// lineSpinner prints the spinner text once instead of animating it.
type lineSpinner struct {
	out  io.Writer
	text string
}

func (s *lineSpinner) Start()                 { fmt.Fprintln(s.out, s.text) }
func (s *lineSpinner) Stop()                  {}
func (s *lineSpinner) UpdateText(text string) { s.text = text }
