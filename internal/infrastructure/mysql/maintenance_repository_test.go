package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

func newMaintenanceRepo(t *testing.T) (*MySQLMaintenanceRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMySQLMaintenanceRepository(db), mock
}

func TestMySQLMaintenanceRepository_DeleteAuditLogsBefore(t *testing.T) {
	repo, mock := newMaintenanceRepo(t)

	cutoff := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM audit_logs WHERE created_at < \?`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 17))

	deleted, err := repo.DeleteAuditLogsBefore(context.Background(), cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(17), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMaintenanceRepository_DeleteActivitiesBefore(t *testing.T) {
	repo, mock := newMaintenanceRepo(t)

	cutoff := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM user_activities WHERE created_at < \?`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteActivitiesBefore(context.Background(), cutoff)
	require.NoError(t, err)
	require.Zero(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMaintenanceRepository_DeleteExpiredSessions(t *testing.T) {
	repo, mock := newMaintenanceRepo(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM user_sessions WHERE expires_at < \?`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpiredSessions(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMaintenanceRepository_InsertAuditLog(t *testing.T) {
	repo, mock := newMaintenanceRepo(t)

	entry := &domain.AuditLog{
		ID:        "audit-1",
		UserID:    "user-1",
		Action:    "sale.finalize",
		Resource:  "sale-9",
		Details:   "finalized via api",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs(entry.ID, entry.UserID, entry.Action, entry.Resource, entry.Details, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.InsertAuditLog(context.Background(), entry))
	require.NoError(t, mock.ExpectationsWereMet())
}
