package sched

import (
	"context"
	"time"
)

// Job is a single recurring unit of work, typically one country's
// daily report run
type Job interface {
	// Name returns the human-readable name of the job
	Name() string

	// Interval returns the interval at which the job should be run
	Interval() time.Duration

	// Run executes the job once
	Run(ctx context.Context) error
}
