package sched

import (
	"context"
	"time"

	"github.com/rs/xid"
)

// scheduledRun is a single scheduled job run
type scheduledRun struct {
	at    time.Time
	job   Job
	jobID xid.ID
}

// Less is utilized to sort scheduled runs by their due-time (latest == first)
func (a scheduledRun) Less(b scheduledRun) bool {
	return a.at.Before(b.at)
}

// workerInfo is the work context for the job routine
type workerInfo struct {
	job   Job
	resCh chan<- *workerResponse
	jobID xid.ID
}

// workerResponse is the job routine response
type workerResponse struct {
	error error // encountered error, if any
	jobID xid.ID
}

// handleRun executes the job once
func handleRun(
	ctx context.Context,
	info *workerInfo,
) {
	err := info.job.Run(ctx)

	response := &workerResponse{
		error: err,
		jobID: info.jobID,
	}

	select {
	case <-ctx.Done():
	case info.resCh <- response:
	}
}
