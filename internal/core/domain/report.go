package domain

import "time"

// Outcome is the result of processing a single task in a run.
type Outcome string

const (
	// OutcomeSkipped means the cached record was fresh and no call was made.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeSucceeded means content was generated and stored.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed means generation or persistence failed.
	OutcomeFailed Outcome = "failed"
	// OutcomePending means a dry run found the task stale.
	OutcomePending Outcome = "pending"
)

// RunResult records what happened to one task.
type RunResult struct {
	TaskKey  string        `json:"taskKey"`
	Task     string        `json:"task"`
	Outcome  Outcome       `json:"outcome"`
	Reason   string        `json:"reason,omitzero"`
	Duration time.Duration `json:"duration,omitzero"`
}

// Report aggregates the results of one scheduled run.
type Report struct {
	RunID       string      `json:"runId"`
	StartedAt   time.Time   `json:"startedAt"`
	FinishedAt  time.Time   `json:"finishedAt,omitzero"`
	Candidates  int         `json:"candidates"`
	Results     []RunResult `json:"results"`
	Succeeded   int         `json:"succeeded"`
	Skipped     int         `json:"skipped"`
	Failed      int         `json:"failed"`
	Pending     int         `json:"pending,omitzero"`
	ConfigError string      `json:"configError,omitzero"`
	DryRun      bool        `json:"dryRun,omitzero"`
}

// NewReport starts an empty report for the given run.
func NewReport(runID string, startedAt time.Time) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: startedAt,
		Results:   []RunResult{},
	}
}

// NewConfigErrorReport returns a report for a run that never started because
// the pipeline could not be configured.
func NewConfigErrorReport(runID string, at time.Time, err error) *Report {
	r := NewReport(runID, at)
	r.FinishedAt = at
	r.ConfigError = err.Error()
	return r
}

// Add appends a result and updates the totals.
func (r *Report) Add(res RunResult) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeSucceeded:
		r.Succeeded++
	case OutcomeFailed:
		r.Failed++
	case OutcomePending:
		r.Pending++
	}
}

// Processed returns the number of tasks the run has handled so far.
func (r *Report) Processed() int {
	return len(r.Results)
}

// Clone returns a deep copy that is safe to hand to another goroutine.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	c := *r
	c.Results = make([]RunResult, len(r.Results))
	copy(c.Results, r.Results)
	return &c
}
