package tui

import "time"

// pollInterval is how often the model reads a new snapshot.
const pollInterval = 150 * time.Millisecond

// MsgTick asks the model to poll the run and advance the spinner.
type MsgTick struct{}
