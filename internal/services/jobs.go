package services

import (
	"context"
	"fmt"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/config"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

// Registered job names.
const (
	JobExpiryNotifications    = "expiry-notifications"
	JobCleanupNotifications   = "cleanup-notifications"
	JobDailyAuditCleanup      = "daily-audit-cleanup"
	JobWeeklyAuditCleanup     = "weekly-audit-cleanup"
	JobMonthlyActivityCleanup = "monthly-user-activity-cleanup"
	JobExpiredSaleCleanup     = "expired-sale-cleanup"
	JobInventoryCheck         = "inventory-check"
	JobExpiredSessionsCleanup = "expired-sessions-cleanup"
	JobWeeklySummaryReports   = "weekly-summary-reports"
)

// Fixed schedule table, local timezone. The expired-sale cleanup runs on a
// short interval instead of a time-of-day slot.
const (
	scheduleExpiryNotifications = "0 0 8 * * *" // daily 08:00
	scheduleCleanupNotifs       = "0 0 2 * * 0" // Sunday 02:00
	scheduleAuditCleanup        = "0 0 3 * * *" // daily 03:00
	scheduleActivityCleanup     = "0 0 4 1 * *" // monthly, day 1, 04:00
	scheduleExpiredSaleCleanup  = "@every 10m"
)

// RegisterMaintenanceJobs builds the static job registry at process start.
// Each definition binds one adapter; the runner stays ignorant of what the
// adapters actually touch.
func RegisterMaintenanceJobs(
	runner *JobRunner,
	expiry *ExpiryService,
	maintenance *MaintenanceService,
	expiredSales *ExpiredSaleService,
	inventory *InventoryService,
	reports *ReportService,
	cfg *config.JobsConfig,
) error {
	defs := []*domain.JobDefinition{
		{
			Name:        JobExpiryNotifications,
			Schedule:    scheduleExpiryNotifications,
			Description: "Generate notifications for expired, critical and warning drugs",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				created, err := expiry.GenerateExpiryNotifications(ctx)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(created), nil
			},
		},
		{
			Name:        JobCleanupNotifications,
			Schedule:    scheduleCleanupNotifs,
			Description: "Delete read notifications past the retention window",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				deleted, err := expiry.CleanupOldNotifications(ctx)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(deleted), nil
			},
		},
		{
			Name:        JobDailyAuditCleanup,
			Schedule:    scheduleAuditCleanup,
			Description: "Delete audit logs older than the retention window",
			Run: func(ctx context.Context, params map[string]interface{}) (*domain.JobResult, error) {
				daysToKeep := cfg.AuditRetentionDays
				if params != nil {
					parsed, err := intParam(params, "daysToKeep")
					if err != nil {
						return nil, err
					}
					daysToKeep = parsed
				}

				deleted, err := maintenance.CleanupAuditLogs(ctx, daysToKeep)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(deleted), nil
			},
		},
		{
			Name:        JobWeeklyAuditCleanup,
			Schedule:    domain.ScheduleManual,
			Description: "Delete audit logs older than seven days",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				deleted, err := maintenance.CleanupAuditLogs(ctx, 7)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(deleted), nil
			},
		},
		{
			Name:        JobMonthlyActivityCleanup,
			Schedule:    scheduleActivityCleanup,
			Description: "Delete user activity records older than the retention window",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				deleted, err := maintenance.CleanupUserActivities(ctx, cfg.ActivityRetentionDays)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(deleted), nil
			},
		},
		{
			Name:        JobExpiredSaleCleanup,
			Schedule:    scheduleExpiredSaleCleanup,
			Description: "Remove expired unfinalized sales and restore reserved stock",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				cleaned, err := expiredSales.CleanupExpired(ctx)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(cleaned), nil
			},
		},
		{
			Name:        JobInventoryCheck,
			Schedule:    domain.ScheduleManual,
			Description: "Create low-stock notifications for drugs under the threshold",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				created, err := inventory.RunInventoryCheck(ctx)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(created), nil
			},
		},
		{
			Name:        JobExpiredSessionsCleanup,
			Schedule:    domain.ScheduleManual,
			Description: "Delete user sessions past their expiry",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				deleted, err := maintenance.CleanupExpiredSessions(ctx)
				if err != nil {
					return nil, err
				}
				return domain.CountResult(deleted), nil
			},
		},
		{
			Name:        JobWeeklySummaryReports,
			Schedule:    domain.ScheduleManual,
			Description: "Aggregate the last seven days of sales into a report notification",
			Run: func(ctx context.Context, _ map[string]interface{}) (*domain.JobResult, error) {
				if err := reports.GenerateWeeklySummary(ctx); err != nil {
					return nil, err
				}
				return nil, nil
			},
		},
	}

	for _, def := range defs {
		if err := runner.Register(def); err != nil {
			return err
		}
	}

	return nil
}

func intParam(params map[string]interface{}, key string) (int, error) {
	value, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrInvalidParameter, key)
	}

	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidParameter, key)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s must be numeric", domain.ErrInvalidParameter, key)
	}
}
