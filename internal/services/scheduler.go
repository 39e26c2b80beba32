package services

import (
	"context"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronJobScheduler wires every registered job with a time-based schedule
// onto a cron instance. Each trigger fires on its own timeline; nothing
// here serializes jobs (the runner handles same-job overlap). Scheduled
// triggers are gated by leader election so a multi-replica deployment
// runs each schedule once.
type CronJobScheduler struct {
	cron       *cron.Cron
	runner     *JobRunner
	leader     domain.LeaderElection
	instanceID string
	log        logger.Logger
}

func NewCronJobScheduler(runner *JobRunner, leader domain.LeaderElection,
	instanceID string, log logger.Logger) *CronJobScheduler {
	return &CronJobScheduler{
		cron:       cron.New(cron.WithSeconds()),
		runner:     runner,
		leader:     leader,
		instanceID: instanceID,
		log:        log,
	}
}

func (s *CronJobScheduler) Start(ctx context.Context) error {
	s.log.Info("Starting job scheduler")

	for _, job := range s.runner.Jobs() {
		if job.Schedule == domain.ScheduleManual {
			continue
		}

		name := job.Name
		_, err := s.cron.AddFunc(job.Schedule, func() {
			s.tick(ctx, name)
		})
		if err != nil {
			return err
		}

		s.log.Info("Scheduled job", "job", name, "schedule", job.Schedule)
	}

	s.cron.Start()
	return nil
}

func (s *CronJobScheduler) Stop() error {
	s.log.Info("Stopping job scheduler")
	<-s.cron.Stop().Done()
	return nil
}

func (s *CronJobScheduler) tick(ctx context.Context, jobName string) {
	if s.leader != nil {
		isLeader, err := s.leader.IsLeader(ctx, s.instanceID)
		if err != nil {
			s.log.Error("Failed to check leadership, skipping tick", "job", jobName, "error", err)
			return
		}
		if !isLeader {
			s.log.Debug("Not leader, skipping scheduled run", "job", jobName)
			return
		}
	}

	s.runner.RunScheduled(ctx, jobName)
}
