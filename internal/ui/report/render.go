// Package report renders run reports and task plans for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/ui/output"
	"go.trai.ch/pagefresh/internal/ui/style"
)

const maxKeyWidth = 60

// Renderer writes human-readable reports.
type Renderer struct {
	out *termenv.Output
}

// New creates a Renderer on w with the detected color profile.
func New(w io.Writer) *Renderer {
	return &Renderer{out: output.New(w)}
}

// NewWithProfile creates a Renderer with a fixed color profile.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile) *Renderer {
	return &Renderer{out: output.NewWithProfile(w, profileFn)}
}

// Report writes one line per result followed by a summary.
func (r *Renderer) Report(rep *domain.Report) error {
	header := "Refresh run " + rep.RunID
	if rep.DryRun {
		header += " (dry run)"
	}
	if err := r.line(header, style.Iris); err != nil {
		return err
	}

	if rep.ConfigError != "" {
		return r.line(fmt.Sprintf("  %s configuration error: %s", style.Cross, rep.ConfigError), style.Red)
	}

	width := keyWidth(rep.Results)
	for _, res := range rep.Results {
		icon, color := style.OutcomeIcon(res.Outcome)
		key := lipgloss.NewStyle().Width(width).Render(res.TaskKey)

		text := fmt.Sprintf("  %s %s  %s", icon, key, res.Task)
		switch {
		case res.Reason != "":
			text += "  " + firstLine(res.Reason)
		case res.Duration > 0:
			text += "  " + res.Duration.Round(time.Millisecond).String()
		}
		if err := r.line(text, color); err != nil {
			return err
		}
	}

	return r.line(Summary(rep), style.Slate)
}

// Plan writes the enumerated tasks in order.
func (r *Renderer) Plan(tasks []domain.Task) error {
	if err := r.line(fmt.Sprintf("%d tasks", len(tasks)), style.Iris); err != nil {
		return err
	}
	for i, t := range tasks {
		text := fmt.Sprintf("  %3d  %-8s %s  %s", i+1, t.Kind, t.CacheKey(), t)
		if err := r.line(text, style.Slate); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) line(text string, color lipgloss.Color) error {
	styled := r.out.String(text).Foreground(termenv.RGBColor(string(color)))
	_, err := r.out.WriteString(styled.String() + "\n")
	return err
}

// Summary returns the one-line totals of rep.
func Summary(rep *domain.Report) string {
	parts := []string{
		fmt.Sprintf("%d succeeded", rep.Succeeded),
		fmt.Sprintf("%d skipped", rep.Skipped),
		fmt.Sprintf("%d failed", rep.Failed),
	}
	if rep.DryRun {
		parts = append(parts, fmt.Sprintf("%d pending", rep.Pending))
	}
	return fmt.Sprintf("%d of %d candidates processed: %s", rep.Processed(), rep.Candidates, strings.Join(parts, ", "))
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func keyWidth(results []domain.RunResult) int {
	width := 0
	for _, res := range results {
		width = max(width, len(res.TaskKey))
	}
	return min(width, maxKeyWidth)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
