package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithLevel(zapcore.ErrorLevel)
}

func TestJobRunner_RegisterDuplicate(t *testing.T) {
	runner := NewJobRunner(&fakePublisher{}, testLogger())

	def := &domain.JobDefinition{
		Name:     "noop",
		Schedule: domain.ScheduleManual,
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			return nil, nil
		},
	}

	require.NoError(t, runner.Register(def))
	err := runner.Register(def)
	require.ErrorIs(t, err, domain.ErrDuplicateJob)
}

func TestJobRunner_RunManual_Success(t *testing.T) {
	pub := &fakePublisher{}
	runner := NewJobRunner(pub, testLogger())

	require.NoError(t, runner.Register(&domain.JobDefinition{
		Name:     "count-job",
		Schedule: domain.ScheduleManual,
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			return domain.CountResult(7), nil
		},
	}))

	result, err := runner.RunManual(context.Background(), "count-job", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.DeletedCount)
	require.Equal(t, int64(7), *result.DeletedCount)

	events := pub.jobEvents()
	require.Len(t, events, 2)

	triggered := events[0].Payload.(*domain.JobEvent)
	require.Equal(t, domain.EventJobTriggered, events[0].Event)
	require.Equal(t, "count-job", triggered.JobName)
	require.Equal(t, domain.JobTypeManual, triggered.JobType)

	completed := events[1].Payload.(*domain.JobEvent)
	require.Equal(t, domain.EventJobCompleted, events[1].Event)
	require.Equal(t, "count-job", completed.JobName)
	require.NotNil(t, completed.Result)
	require.Equal(t, int64(7), *completed.Result.DeletedCount)
	require.GreaterOrEqual(t, completed.DurationMs, int64(0))
}

func TestJobRunner_RunManual_Failure(t *testing.T) {
	pub := &fakePublisher{}
	runner := NewJobRunner(pub, testLogger())

	require.NoError(t, runner.Register(&domain.JobDefinition{
		Name:     "broken-job",
		Schedule: domain.ScheduleManual,
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			return nil, errors.New("connection refused")
		},
	}))

	_, err := runner.RunManual(context.Background(), "broken-job", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")

	events := pub.jobEvents()
	require.Len(t, events, 2)
	require.Equal(t, domain.EventJobTriggered, events[0].Event)
	require.Equal(t, domain.EventJobFailed, events[1].Event)

	failed := events[1].Payload.(*domain.JobEvent)
	require.Equal(t, "connection refused", failed.Error)
	require.Nil(t, failed.Result)
}

func TestJobRunner_RunManual_UnknownJob(t *testing.T) {
	pub := &fakePublisher{}
	runner := NewJobRunner(pub, testLogger())

	_, err := runner.RunManual(context.Background(), "no-such-job", nil)
	require.ErrorIs(t, err, domain.ErrJobNotFound)
	require.Empty(t, pub.captured())
}

func TestJobRunner_RejectsOverlappingRuns(t *testing.T) {
	pub := &fakePublisher{}
	runner := NewJobRunner(pub, testLogger())

	started := make(chan struct{})
	release := make(chan struct{})

	require.NoError(t, runner.Register(&domain.JobDefinition{
		Name:     "slow-job",
		Schedule: domain.ScheduleManual,
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			close(started)
			<-release
			return nil, nil
		},
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := runner.RunManual(context.Background(), "slow-job", nil)
		require.NoError(t, err)
	}()

	<-started

	_, err := runner.RunManual(context.Background(), "slow-job", nil)
	require.ErrorIs(t, err, domain.ErrJobAlreadyRunning)

	close(release)
	wg.Wait()

	// Only the first run emitted events: one triggered, one completed.
	events := pub.jobEvents()
	require.Len(t, events, 2)

	// The slot was released; the job can run again. The closure closes and
	// reads these channels, so give it fresh ones for the second run.
	started = make(chan struct{})
	release = make(chan struct{})
	close(release)
	_, err = runner.RunManual(context.Background(), "slow-job", nil)
	require.NoError(t, err)
	require.Len(t, pub.jobEvents(), 4)
}

func TestJobRunner_TerminalEventOrdering(t *testing.T) {
	pub := &fakePublisher{}
	runner := NewJobRunner(pub, testLogger())

	require.NoError(t, runner.Register(&domain.JobDefinition{
		Name:     "quick",
		Schedule: domain.ScheduleManual,
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			return nil, nil
		},
	}))

	for i := 0; i < 5; i++ {
		_, err := runner.RunManual(context.Background(), "quick", nil)
		require.NoError(t, err)
	}

	// Every execution is exactly triggered then one terminal event.
	events := pub.jobEvents()
	require.Len(t, events, 10)
	for i := 0; i < len(events); i += 2 {
		require.Equal(t, domain.EventJobTriggered, events[i].Event)
		terminal := events[i+1].Event
		require.True(t, terminal == domain.EventJobCompleted || terminal == domain.EventJobFailed)
	}
}

func TestJobRunner_RunScheduled_SwallowsError(t *testing.T) {
	pub := &fakePublisher{}
	runner := NewJobRunner(pub, testLogger())

	require.NoError(t, runner.Register(&domain.JobDefinition{
		Name:     "flaky",
		Schedule: "@every 10m",
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			return nil, errors.New("boom")
		},
	}))

	// Must not panic or propagate.
	runner.RunScheduled(context.Background(), "flaky")

	events := pub.jobEvents()
	require.Len(t, events, 2)
	require.Equal(t, domain.EventJobFailed, events[1].Event)
	require.Equal(t, domain.JobTypeScheduled, events[1].Payload.(*domain.JobEvent).JobType)
}

func TestJobRunner_JobsSnapshot(t *testing.T) {
	pub := &fakePublisher{}
	runner := NewJobRunner(pub, testLogger())

	require.NoError(t, runner.Register(&domain.JobDefinition{
		Name:        "first",
		Schedule:    "0 0 8 * * *",
		Description: "first job",
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			return nil, nil
		},
	}))
	require.NoError(t, runner.Register(&domain.JobDefinition{
		Name:     "second",
		Schedule: domain.ScheduleManual,
		Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
			return nil, nil
		},
	}))

	jobs := runner.Jobs()
	require.Len(t, jobs, 2)
	require.Equal(t, "first", jobs[0].Name)
	require.Equal(t, "second", jobs[1].Name)
	require.Nil(t, jobs[0].LastRun)

	before := time.Now()
	_, err := runner.RunManual(context.Background(), "second", nil)
	require.NoError(t, err)

	jobs = runner.Jobs()
	require.NotNil(t, jobs[1].LastRun)
	require.False(t, jobs[1].LastRun.Before(before.Truncate(time.Second)))
	require.Equal(t, "completed", jobs[1].LastStatus)
	require.False(t, jobs[1].Running)
}
