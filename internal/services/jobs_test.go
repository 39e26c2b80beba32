package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/config"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

type fakeMaintenanceRepo struct {
	mu              sync.Mutex
	auditDeleted    int64
	lastAuditCutoff time.Time
}

func (r *fakeMaintenanceRepo) InsertAuditLog(context.Context, *domain.AuditLog) error { return nil }

func (r *fakeMaintenanceRepo) DeleteAuditLogsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastAuditCutoff = cutoff
	return r.auditDeleted, nil
}

func (r *fakeMaintenanceRepo) RecordActivity(context.Context, *domain.UserActivity) error { return nil }

func (r *fakeMaintenanceRepo) DeleteActivitiesBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeMaintenanceRepo) DeleteExpiredSessions(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeMaintenanceRepo) auditCutoff() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastAuditCutoff
}

func registryFixture(t *testing.T) (*JobRunner, *fakeMaintenanceRepo, time.Time) {
	t.Helper()

	drugRepo := newFakeDrugRepo()
	saleRepo := newFakeSaleRepo()
	notifRepo := newFakeNotificationRepo()
	maintRepo := &fakeMaintenanceRepo{auditDeleted: 11}
	log := testLogger()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	expiry := NewExpiryService(drugRepo, notifRepo, log)
	expiry.now = func() time.Time { return now }

	maintenance := NewMaintenanceService(maintRepo, log)
	maintenance.now = func() time.Time { return now }

	expiredSales := NewExpiredSaleService(saleRepo, drugRepo, &fakeStatsCache{}, &fakePublisher{}, log)
	inventory := NewInventoryService(drugRepo, notifRepo, 10, log)
	reports := NewReportService(saleRepo, notifRepo, log)

	runner := NewJobRunner(&fakePublisher{}, log)
	cfg := &config.JobsConfig{
		AuditRetentionDays:    30,
		ActivityRetentionDays: 90,
		LowStockThreshold:     10,
	}
	require.NoError(t, RegisterMaintenanceJobs(runner, expiry, maintenance, expiredSales, inventory, reports, cfg))

	return runner, maintRepo, now
}

func TestRegisterMaintenanceJobs_RegistersAll(t *testing.T) {
	runner, _, _ := registryFixture(t)

	jobs := runner.Jobs()
	var names []string
	for _, job := range jobs {
		names = append(names, job.Name)
	}

	require.Equal(t, []string{
		JobExpiryNotifications,
		JobCleanupNotifications,
		JobDailyAuditCleanup,
		JobWeeklyAuditCleanup,
		JobMonthlyActivityCleanup,
		JobExpiredSaleCleanup,
		JobInventoryCheck,
		JobExpiredSessionsCleanup,
		JobWeeklySummaryReports,
	}, names)
}

func TestRegisterMaintenanceJobs_SchedulesParse(t *testing.T) {
	runner, _, _ := registryFixture(t)

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour |
		cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	scheduled := 0
	for _, job := range runner.Jobs() {
		if job.Schedule == domain.ScheduleManual {
			continue
		}
		_, err := parser.Parse(job.Schedule)
		require.NoError(t, err, "job %s schedule %q", job.Name, job.Schedule)
		scheduled++
	}

	// expiry-notifications, cleanup-notifications, daily-audit-cleanup,
	// monthly-user-activity-cleanup and expired-sale-cleanup run on timers.
	require.Equal(t, 5, scheduled)
}

func TestDailyAuditCleanup_UsesConfiguredRetentionWhenScheduled(t *testing.T) {
	runner, maintRepo, now := registryFixture(t)

	result, err := runner.RunManual(context.Background(), JobDailyAuditCleanup, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, int64(11), *result.DeletedCount)

	require.Equal(t, now.AddDate(0, 0, -30), maintRepo.auditCutoff())
}

func TestDailyAuditCleanup_ParamOverridesRetention(t *testing.T) {
	runner, maintRepo, now := registryFixture(t)

	_, err := runner.RunManual(context.Background(), JobDailyAuditCleanup,
		map[string]interface{}{"daysToKeep": 7})
	require.NoError(t, err)

	require.Equal(t, now.AddDate(0, 0, -7), maintRepo.auditCutoff())
}

func TestDailyAuditCleanup_RejectsBadParams(t *testing.T) {
	runner, _, _ := registryFixture(t)

	_, err := runner.RunManual(context.Background(), JobDailyAuditCleanup,
		map[string]interface{}{"daysToKeep": "seven"})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = runner.RunManual(context.Background(), JobDailyAuditCleanup,
		map[string]interface{}{"daysToKeep": 2.5})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = runner.RunManual(context.Background(), JobDailyAuditCleanup,
		map[string]interface{}{"daysToKeep": 0})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}
