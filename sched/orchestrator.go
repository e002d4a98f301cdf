package sched

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"
)

var (
	errInvalidJob      = errors.New("invalid job")
	errInvalidInterval = errors.New("invalid interval")
)

// retryDelay is how soon a failed job run is retried
const retryDelay = time.Second * 10

// Orchestrator is the recurring-run scheduler for registered jobs
type Orchestrator struct {
	logger *slog.Logger

	registeredJobs sync.Map

	q             iq.Queue[scheduledRun]
	queryInterval time.Duration
	qMux          sync.Mutex
}

// New creates a new Orchestrator instance
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		q:             iq.NewQueue[scheduledRun](),
		queryInterval: time.Second, // every second
	}

	// Apply the options
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Register registers a new job with the orchestrator.
// The job is immediately queued up for execution
func (o *Orchestrator) Register(j Job) error {
	if j == nil || j.Name() == "" {
		return errInvalidJob
	}

	if j.Interval() <= 0 {
		return errInvalidInterval
	}

	// Register the job
	id := xid.New()
	o.registeredJobs.Store(id, j)

	o.logger.Info(
		"registered new job",
		"name", j.Name(),
	)

	// Schedule the run
	o.scheduleRun(
		time.Now().UTC(),
		id,
		j,
	)

	return nil
}

// Start starts the job orchestration service loop [BLOCKING]
func (o *Orchestrator) Start(ctx context.Context) error {
	collectorCh := make(chan *workerResponse, 100)

	// Start a listener for monitoring jobs
	ticker := time.NewTicker(o.queryInterval)
	defer ticker.Stop()

	// handleDue initializes all job runs that are executable (due)
	handleDue := func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				nextRun := o.nextRun()
				if nextRun == nil {
					return // nothing to schedule anymore
				}

				o.logger.Info(
					"scheduling job run",
					"name", nextRun.job.Name(),
				)

				// Spawn worker
				info := &workerInfo{
					job:   nextRun.job,
					jobID: nextRun.jobID,
					resCh: collectorCh,
				}

				go handleRun(ctx, info)
			}
		}
	}

	// Initialize the first set of due runs (on boot)
	handleDue()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("orchestrator service shut down")
			close(collectorCh)

			return nil
		case <-ticker.C:
			handleDue()
		case response := <-collectorCh:
			now := time.Now().UTC()

			jobRaw, ok := o.registeredJobs.Load(response.jobID)

			if !ok {
				o.logger.Error(
					"unable to load registered job",
					"id", response.jobID.String(),
				)

				continue
			}

			job, _ := jobRaw.(Job)

			if response.error != nil {
				o.logger.Error(
					"error encountered during job run",
					"name", job.Name(),
					"err", response.error.Error(),
				)

				// Retry the run soon
				o.scheduleRun(
					now.Add(retryDelay),
					response.jobID,
					job,
				)

				continue
			}

			o.logger.Info(
				"job run complete",
				"name", job.Name(),
			)

			// Schedule the next run for this job
			o.scheduleRun(
				now.Add(job.Interval()),
				response.jobID,
				job,
			)
		}
	}
}

// scheduleRun schedules a new job run
func (o *Orchestrator) scheduleRun(
	at time.Time,
	jobID xid.ID,
	job Job,
) {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	futureRun := scheduledRun{
		at:    at,
		jobID: jobID,
		job:   job,
	}

	o.q.Push(futureRun)
}

// nextRun fetches the next due job run, as of the moment of calling
func (o *Orchestrator) nextRun() *scheduledRun {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	now := time.Now().UTC()

	// Check if anything needs to be scheduled
	if o.q.Len() == 0 {
		return nil // nothing to schedule, all jobs are running
	}

	// Check if the top element is due
	if o.q.Index(0).at.After(now) {
		return nil // nothing to schedule, latest run is in the future
	}

	// Grab the next run
	nextRun := o.q.PopFront()

	return nextRun
}
