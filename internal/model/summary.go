package model

import "time"

// Outcome status values for one processed instrument.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Outcome is the tagged result of processing a single instrument. Workers
// never propagate errors across the parallel boundary; they report one of
// these instead.
type Outcome struct {
	Ticker string
	Status string
	Rows   int
	Err    error
}

// RunSummary aggregates one pipeline run for logging and run history.
type RunSummary struct {
	Job          string
	Processed    int
	Succeeded    int
	Failed       int
	Skipped      int
	RowsWritten  int
	Partitions   int
	IndicatorSet string
	StartedAt    time.Time
	Elapsed      time.Duration
}
