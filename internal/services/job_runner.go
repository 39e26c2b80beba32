package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
)

// JobRunner owns the fixed registry of maintenance jobs and executes them.
// Every run produces exactly one triggered event immediately followed by
// exactly one terminal event (completed xor failed). The runner itself is
// side-effect-free apart from publishing events and logging; the actual
// work lives in the adapters behind each JobDefinition.
type JobRunner struct {
	jobs       map[string]*domain.JobDefinition
	order      []string
	inflight   map[string]bool
	lastRun    map[string]time.Time
	lastStatus map[string]string
	mutex      sync.Mutex
	publisher  domain.EventPublisher
	log        logger.Logger
}

func NewJobRunner(publisher domain.EventPublisher, log logger.Logger) *JobRunner {
	return &JobRunner{
		jobs:       make(map[string]*domain.JobDefinition),
		inflight:   make(map[string]bool),
		lastRun:    make(map[string]time.Time),
		lastStatus: make(map[string]string),
		publisher:  publisher,
		log:        log,
	}
}

// Register adds a job to the registry. Definitions are immutable once
// registered; a duplicate name is an error.
func (r *JobRunner) Register(def *domain.JobDefinition) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.jobs[def.Name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateJob, def.Name)
	}

	r.jobs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// RunManual executes a registered job on demand, bypassing its schedule.
// The raw adapter result is returned to the caller alongside the emitted
// events; adapter errors are re-thrown so the HTTP layer can report them.
// An unknown name fails with ErrJobNotFound and emits no events.
func (r *JobRunner) RunManual(ctx context.Context, jobName string, params map[string]interface{}) (*domain.JobResult, error) {
	r.mutex.Lock()
	job, ok := r.jobs[jobName]
	r.mutex.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobName)
	}

	return r.execute(ctx, job, domain.JobTypeManual, params)
}

// RunScheduled is invoked by the cron callbacks. There is no caller to
// report to, so failures are logged and swallowed after the failed event
// has been emitted.
func (r *JobRunner) RunScheduled(ctx context.Context, jobName string) {
	r.mutex.Lock()
	job, ok := r.jobs[jobName]
	r.mutex.Unlock()

	if !ok {
		r.log.Error("Scheduled trigger for unregistered job", "job", jobName)
		return
	}

	if _, err := r.execute(ctx, job, domain.JobTypeScheduled, nil); err != nil {
		r.log.Error("Scheduled job failed", "job", jobName, "error", err)
	}
}

// Jobs returns a snapshot of the registry in registration order.
func (r *JobRunner) Jobs() []domain.JobInfo {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	infos := make([]domain.JobInfo, 0, len(r.order))
	for _, name := range r.order {
		job := r.jobs[name]
		info := domain.JobInfo{
			Name:        job.Name,
			Schedule:    job.Schedule,
			Description: job.Description,
			Running:     r.inflight[name],
			LastStatus:  r.lastStatus[name],
		}
		if last, ok := r.lastRun[name]; ok {
			t := last
			info.LastRun = &t
		}
		infos = append(infos, info)
	}

	return infos
}

func (r *JobRunner) execute(ctx context.Context, job *domain.JobDefinition, jobType domain.JobType, params map[string]interface{}) (*domain.JobResult, error) {
	if !r.acquire(job.Name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobAlreadyRunning, job.Name)
	}

	start := time.Now()
	r.publish(ctx, domain.EventJobTriggered, &domain.JobEvent{
		Event:     domain.EventJobTriggered,
		JobName:   job.Name,
		JobType:   jobType,
		Timestamp: start,
	})

	result, err := job.Run(ctx, params)
	if err != nil {
		r.release(job.Name, start, "failed")
		r.publish(ctx, domain.EventJobFailed, &domain.JobEvent{
			Event:     domain.EventJobFailed,
			JobName:   job.Name,
			JobType:   jobType,
			Timestamp: time.Now(),
			Error:     err.Error(),
		})
		r.publishStatus(ctx)
		return nil, fmt.Errorf("job %s: %w", job.Name, err)
	}

	duration := time.Since(start)
	r.release(job.Name, start, "completed")
	r.publish(ctx, domain.EventJobCompleted, &domain.JobEvent{
		Event:      domain.EventJobCompleted,
		JobName:    job.Name,
		JobType:    jobType,
		Timestamp:  time.Now(),
		DurationMs: duration.Milliseconds(),
		Result:     result,
	})
	r.publishStatus(ctx)

	r.log.Info("Job completed", "job", job.Name, "type", string(jobType), "duration", duration)
	return result, nil
}

// acquire reserves the per-job execution slot. A second trigger of a job
// that is still running is rejected rather than serialized.
func (r *JobRunner) acquire(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.inflight[name] {
		return false
	}
	r.inflight[name] = true
	return true
}

func (r *JobRunner) release(name string, start time.Time, status string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.inflight, name)
	r.lastRun[name] = start
	r.lastStatus[name] = status
}

// publish is best effort; a broken transport must not fail the job.
func (r *JobRunner) publish(ctx context.Context, event string, payload *domain.JobEvent) {
	if err := r.publisher.Publish(ctx, event, payload); err != nil {
		r.log.Error("Failed to publish job event", "event", event, "job", payload.JobName, "error", err)
	}
}

func (r *JobRunner) publishStatus(ctx context.Context) {
	if err := r.publisher.Publish(ctx, domain.EventStatusUpdated, r.Jobs()); err != nil {
		r.log.Error("Failed to publish status update", "error", err)
	}
}
