package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

type MySQLNotificationRepository struct {
	db *sql.DB
}

func NewMySQLNotificationRepository(db *sql.DB) *MySQLNotificationRepository {
	return &MySQLNotificationRepository{db: db}
}

func (r *MySQLNotificationRepository) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	query := `
        INSERT INTO notifications (id, type, tier, drug_id, message, is_read, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		notification.ID, string(notification.Type), string(notification.Tier),
		notification.DrugID, notification.Message, notification.Read, notification.CreatedAt)
	return err
}

func (r *MySQLNotificationRepository) ListNotifications(ctx context.Context, unreadOnly bool) ([]*domain.Notification, error) {
	query := `
        SELECT id, type, tier, drug_id, message, is_read, created_at
        FROM notifications
    `
	if unreadOnly {
		query += ` WHERE is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var nType, tier string

		err := rows.Scan(&n.ID, &nType, &tier, &n.DrugID, &n.Message, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, err
		}

		n.Type = domain.NotificationType(nType)
		n.Tier = domain.ExpiryTier(tier)
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

func (r *MySQLNotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = ?`, notificationID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MySQLNotificationRepository) DeleteOldRead(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE is_read = TRUE AND created_at < ?`
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
