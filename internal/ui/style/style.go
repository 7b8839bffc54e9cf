// Package style provides the shared colors, icons and text styles of the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/pagefresh/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// Text styles.
var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Muted = lipgloss.NewStyle().Foreground(Slate)
)

// OutcomeIcon returns the icon and color used for an outcome.
func OutcomeIcon(o domain.Outcome) (string, lipgloss.Color) {
	switch o {
	case domain.OutcomeSucceeded:
		return Check, Green
	case domain.OutcomeFailed:
		return Cross, Red
	case domain.OutcomeSkipped:
		return Tilde, Slate
	case domain.OutcomePending:
		return Circle, Yellow
	default:
		return Dot, Slate
	}
}
