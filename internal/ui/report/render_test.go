package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/ui/report"
	"go.trai.ch/pagefresh/internal/ui/style"
)

func ascii() termenv.Profile { return termenv.Ascii }

var (
	plumbers = domain.Industry{Slug: "plumbers", Name: "Plumber", Plural: "Plumbers"}
	berlin   = domain.Location{City: "Berlin", Country: "Germany"}
)

func sampleReport() *domain.Report {
	rep := domain.NewReport("run-1", time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))
	rep.Candidates = 5
	rep.Add(domain.RunResult{
		TaskKey:  "seo:industry:plumbers",
		Task:     "Plumbers",
		Outcome:  domain.OutcomeSucceeded,
		Duration: 1200 * time.Millisecond,
	})
	rep.Add(domain.RunResult{TaskKey: "seo:location:Germany:Berlin", Task: "Berlin, Germany", Outcome: domain.OutcomeSkipped})
	rep.Add(domain.RunResult{
		TaskKey: "seo:combo:plumbers:Germany:Berlin",
		Task:    "Plumbers in Berlin, Germany",
		Outcome: domain.OutcomeFailed,
		Reason:  "provider answered 500 with \"oops\": provider returned an error status\nretry later",
	})
	return rep
}

func TestRenderer_Report(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewWithProfile(&buf, ascii).Report(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Refresh run run-1\n")
	assert.Contains(t, out, style.Check+" seo:industry:plumbers")
	assert.Contains(t, out, "1.2s")
	assert.Contains(t, out, style.Tilde+" seo:location:Germany:Berlin")
	assert.Contains(t, out, style.Cross+" seo:combo:plumbers:Germany:Berlin")
	assert.Contains(t, out, `provider answered 500 with "oops": provider returned an error status`)
	assert.NotContains(t, out, "retry later")
	assert.Contains(t, out, "3 of 5 candidates processed: 1 succeeded, 1 skipped, 1 failed")
}

func TestRenderer_ConfigError(t *testing.T) {
	rep := domain.NewConfigErrorReport("run-2", time.Now(), errors.New("provider credentials are missing"))

	var buf bytes.Buffer
	require.NoError(t, report.NewWithProfile(&buf, ascii).Report(rep))
	assert.Contains(t, buf.String(), "configuration error: provider credentials are missing")
}

func TestSummary_DryRun(t *testing.T) {
	rep := domain.NewReport("dry", time.Now())
	rep.DryRun = true
	rep.Candidates = 2
	rep.Add(domain.RunResult{Outcome: domain.OutcomePending})
	rep.Add(domain.RunResult{Outcome: domain.OutcomeSkipped})

	assert.Equal(t, "2 of 2 candidates processed: 0 succeeded, 1 skipped, 0 failed, 1 pending", report.Summary(rep))
}

func TestRenderer_Plan(t *testing.T) {
	tasks := []domain.Task{
		domain.NewIndustryTask(plumbers),
		domain.NewComboTask(plumbers, berlin),
	}

	var buf bytes.Buffer
	require.NoError(t, report.NewWithProfile(&buf, ascii).Plan(tasks))

	out := buf.String()
	assert.Contains(t, out, "2 tasks\n")
	assert.Contains(t, out, "seo:industry:plumbers  Plumbers")
	assert.Contains(t, out, "seo:combo:plumbers:Germany:Berlin  Plumbers in Berlin, Germany")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, sampleReport()))

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 1, decoded.Failed)
	assert.Len(t, decoded.Results, 3)
}
