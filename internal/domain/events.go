package domain

import (
	"context"
	"time"
)

// Event names on the real-time channel.
const (
	EventJobTriggered        = "cron-job-triggered"
	EventJobCompleted        = "cron-job-completed"
	EventJobFailed           = "cron-job-failed"
	EventStatusUpdated       = "cron-status-updated"
	EventExpiredSalesCleaned = "expired-sales-cleaned"
)

type JobType string

const (
	JobTypeScheduled JobType = "scheduled"
	JobTypeManual    JobType = "manual"
)

// JobResult is what an adapter hands back to the runner. It is opaque to
// the runner beyond being JSON-serializable; a nil result means the adapter
// had nothing to report.
type JobResult struct {
	DeletedCount *int64 `json:"deletedCount,omitempty"`
}

// CountResult builds a JobResult carrying a deleted/created count.
func CountResult(n int64) *JobResult {
	return &JobResult{DeletedCount: &n}
}

// JobEvent describes one step of a job execution. Exactly one triggered
// event and one terminal event (completed xor failed) are published per
// run, in that order. Events are transient and never persisted.
type JobEvent struct {
	Event      string     `json:"event"`
	JobName    string     `json:"job_name"`
	JobType    JobType    `json:"job_type"`
	Timestamp  time.Time  `json:"timestamp"`
	DurationMs int64      `json:"duration_ms,omitempty"`
	Result     *JobResult `json:"result,omitempty"`
	// Error carries the failure message only, never the raw exception,
	// so stack traces are not leaked to subscribers.
	Error string `json:"error,omitempty"`
}

// ExpiredSalesCleanedEvent is the aggregate event emitted once per cleanup
// batch, not once per sale.
type ExpiredSalesCleanedEvent struct {
	Count     int64     `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// JobDefinition describes one registered maintenance job. Immutable once
// registered; the static list is built at process start and not persisted.
type JobDefinition struct {
	Name        string
	Schedule    string // cron expression, or ScheduleManual
	Description string
	Run         func(ctx context.Context, params map[string]interface{}) (*JobResult, error)
}

// ScheduleManual marks a job with no time-based trigger.
const ScheduleManual = "manual"

// JobInfo is the registry snapshot exposed on the status endpoint and in
// cron-status-updated events.
type JobInfo struct {
	Name        string     `json:"name"`
	Schedule    string     `json:"schedule"`
	Description string     `json:"description"`
	Running     bool       `json:"running"`
	LastRun     *time.Time `json:"last_run,omitempty"`
	LastStatus  string     `json:"last_status,omitempty"`
}
