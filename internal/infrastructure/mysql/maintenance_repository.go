package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

// MySQLMaintenanceRepository owns the append-heavy tables the scheduled
// jobs prune: audit logs, user activity and sessions.
type MySQLMaintenanceRepository struct {
	db *sql.DB
}

func NewMySQLMaintenanceRepository(db *sql.DB) *MySQLMaintenanceRepository {
	return &MySQLMaintenanceRepository{db: db}
}

func (r *MySQLMaintenanceRepository) InsertAuditLog(ctx context.Context, log *domain.AuditLog) error {
	query := `
        INSERT INTO audit_logs (id, user_id, action, resource, details, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.Action, log.Resource, log.Details, log.CreatedAt)
	return err
}

func (r *MySQLMaintenanceRepository) DeleteAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *MySQLMaintenanceRepository) RecordActivity(ctx context.Context, activity *domain.UserActivity) error {
	query := `
        INSERT INTO user_activities (id, user_id, session_id, action, created_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		activity.ID, activity.UserID, activity.SessionID, activity.Action, activity.CreatedAt)
	return err
}

func (r *MySQLMaintenanceRepository) DeleteActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_activities WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *MySQLMaintenanceRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
