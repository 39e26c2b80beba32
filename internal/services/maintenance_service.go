package services

import (
	"context"
	"fmt"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"
)

// MaintenanceService wraps the delete-only housekeeping operations on the
// append-heavy tables.
type MaintenanceService struct {
	repo domain.MaintenanceRepository
	log  logger.Logger
	now  func() time.Time
}

func NewMaintenanceService(repo domain.MaintenanceRepository, log logger.Logger) *MaintenanceService {
	return &MaintenanceService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// CleanupAuditLogs deletes audit log records older than daysToKeep days
// and returns the exact deleted count.
func (s *MaintenanceService) CleanupAuditLogs(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 1 {
		return 0, fmt.Errorf("%w: daysToKeep must be at least 1", domain.ErrInvalidParameter)
	}

	cutoff := s.now().AddDate(0, 0, -daysToKeep)
	deleted, err := s.repo.DeleteAuditLogsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.Info("Cleaned up audit logs", "days_to_keep", daysToKeep, "deleted", deleted)
	return deleted, nil
}

func (s *MaintenanceService) CleanupUserActivities(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 1 {
		return 0, fmt.Errorf("%w: daysToKeep must be at least 1", domain.ErrInvalidParameter)
	}

	cutoff := s.now().AddDate(0, 0, -daysToKeep)
	deleted, err := s.repo.DeleteActivitiesBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.Info("Cleaned up user activities", "days_to_keep", daysToKeep, "deleted", deleted)
	return deleted, nil
}

func (s *MaintenanceService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}

	s.log.Info("Cleaned up expired sessions", "deleted", deleted)
	return deleted, nil
}

// RecordAuditLog appends one audit entry; called from the HTTP layer for
// mutating requests.
func (s *MaintenanceService) RecordAuditLog(ctx context.Context, userID, action, resource, details string) error {
	return s.repo.InsertAuditLog(ctx, &domain.AuditLog{
		ID:        utils.GenerateID("audit"),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Details:   details,
		CreatedAt: s.now(),
	})
}

func (s *MaintenanceService) RecordActivity(ctx context.Context, userID, sessionID, action string) error {
	return s.repo.RecordActivity(ctx, &domain.UserActivity{
		ID:        utils.GenerateID("activity"),
		UserID:    userID,
		SessionID: sessionID,
		Action:    action,
		CreatedAt: s.now(),
	})
}
