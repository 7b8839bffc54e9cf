// Package tui provides a live terminal view of a refresh run.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/ui/report"
	"go.trai.ch/pagefresh/internal/ui/style"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// RunSource is a run whose progress can be observed.
type RunSource interface {
	Snapshot() (report *domain.Report, finished bool, err error)
}

// Model is the Bubble Tea model that follows a run until it finishes.
type Model struct {
	source  RunSource
	planned int
	report  *domain.Report
	done    bool
	aborted bool
	frame   int
	height  int
}

// NewModel creates a model for a run expected to process planned tasks.
func NewModel(source RunSource, planned int) *Model {
	return &Model{source: source, planned: planned}
}

// Init starts polling.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(_ time.Time) tea.Msg {
		return MsgTick{}
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case MsgTick:
		return m.poll()
	}
	return m, nil
}

func (m *Model) poll() (tea.Model, tea.Cmd) {
	m.report, m.done, _ = m.source.Snapshot()
	m.frame = (m.frame + 1) % len(spinnerFrames)
	if m.done {
		return m, tea.Quit
	}
	return m, tick()
}

// Aborted reports whether the user asked to stop the run.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Finished reports whether the run had finished at the last poll.
func (m *Model) Finished() bool {
	return m.done
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.report == nil {
		return style.Muted.Render(spinnerFrames[m.frame]+" starting refresh run") + "\n"
	}

	var lines []string
	for _, res := range m.report.Results {
		icon, color := style.OutcomeIcon(res.Outcome)
		line := fmt.Sprintf("%s %s", lipgloss.NewStyle().Foreground(color).Render(icon), res.TaskKey)
		if res.Reason != "" {
			line += style.Muted.Render("  " + firstLine(res.Reason))
		}
		lines = append(lines, line)
	}

	if !m.done && m.report.Processed() < m.planned {
		lines = append(lines, lipgloss.NewStyle().Foreground(style.Yellow).Render(spinnerFrames[m.frame])+" working")
	}

	// Keep the tail visible when the list outgrows the terminal.
	if m.height > 2 && len(lines) > m.height-2 {
		lines = lines[len(lines)-(m.height-2):]
	}

	var s strings.Builder
	s.WriteString(style.Title.Render("Refresh run "+m.report.RunID) + "\n")
	for _, line := range lines {
		s.WriteString(line + "\n")
	}
	s.WriteString(style.Muted.Render(fmt.Sprintf("%d/%d  %s", m.report.Processed(), m.planned, report.Summary(m.report))) + "\n")
	return s.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
