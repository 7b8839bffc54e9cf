//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pagefresh/internal/core/domain"
)

type fakeSource struct {
	report   *domain.Report
	finished bool
}

func (f *fakeSource) Snapshot() (*domain.Report, bool, error) {
	return f.report.Clone(), f.finished, nil
}

func newReport() *domain.Report {
	rep := domain.NewReport("run-1", time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))
	rep.Candidates = 3
	return rep
}

func TestModel_PollsUntilFinished(t *testing.T) {
	src := &fakeSource{report: newReport()}
	m := NewModel(src, 3)

	require.NotNil(t, m.Init())

	_, cmd := m.Update(MsgTick{})
	require.NotNil(t, cmd, "expected another tick while the run is active")
	assert.False(t, m.Finished())

	src.report.Add(domain.RunResult{TaskKey: "seo:industry:plumbers", Outcome: domain.OutcomeSucceeded})
	src.finished = true

	_, cmd = m.Update(MsgTick{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Finished())
	assert.False(t, m.Aborted())
}

func TestModel_QuitAborts(t *testing.T) {
	m := NewModel(&fakeSource{report: newReport()}, 3)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Aborted())
}

func TestModel_View(t *testing.T) {
	src := &fakeSource{report: newReport()}
	src.report.Add(domain.RunResult{TaskKey: "seo:industry:plumbers", Outcome: domain.OutcomeSucceeded})
	src.report.Add(domain.RunResult{
		TaskKey: "seo:industry:roofers",
		Outcome: domain.OutcomeFailed,
		Reason:  "provider answered 503 with \"busy\": provider returned an error status\nretry later",
	})

	m := NewModel(src, 3)
	assert.Contains(t, m.View(), "starting refresh run")

	m.Update(MsgTick{})
	output := m.View()

	assert.Contains(t, output, "Refresh run run-1")
	assert.Contains(t, output, "✓ seo:industry:plumbers")
	assert.Contains(t, output, "✗ seo:industry:roofers")
	assert.Contains(t, output, "provider answered 503")
	assert.NotContains(t, output, "retry later")
	assert.Contains(t, output, "working")
	assert.Contains(t, output, "2/3")
	assert.Contains(t, output, "1 succeeded, 0 skipped, 1 failed")
}

func TestModel_View_KeepsTailVisible(t *testing.T) {
	src := &fakeSource{report: newReport(), finished: true}
	for i := range 10 {
		src.report.Add(domain.RunResult{
			TaskKey: "seo:location:Germany:City" + string(rune('A'+i)),
			Outcome: domain.OutcomeSkipped,
		})
	}

	m := NewModel(src, 10)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 5})
	m.Update(MsgTick{})
	output := m.View()

	assert.NotContains(t, output, "CityA")
	assert.Contains(t, output, "CityJ")
	assert.NotContains(t, output, "working")
	assert.Equal(t, 5, strings.Count(output, "\n"))
}
