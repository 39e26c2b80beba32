package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

func newSaleRepo(t *testing.T) (*MySQLSaleRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMySQLSaleRepository(db), mock
}

func saleColumns() []string {
	return []string{"id", "drug_id", "customer_id", "quantity", "total_price",
		"finalized", "expiry_minutes", "created_at", "updated_at"}
}

func TestMySQLSaleRepository_GetExpiredUnfinalized(t *testing.T) {
	repo, mock := newSaleRepo(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-time.Hour)

	rows := sqlmock.NewRows(saleColumns()).
		AddRow("sale-1", "drug-1", "cust-1", 3, 7.5, false, 15, created, created)

	mock.ExpectQuery(`SELECT (.+) FROM sales\s+WHERE finalized = FALSE AND DATE_ADD\(created_at, INTERVAL expiry_minutes MINUTE\) < \?`).
		WithArgs(now).
		WillReturnRows(rows)

	sales, err := repo.GetExpiredUnfinalized(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Equal(t, "sale-1", sales[0].ID)
	require.Equal(t, 3, sales[0].Quantity)
	require.False(t, sales[0].Finalized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSaleRepository_GetExpiredStats(t *testing.T) {
	repo, mock := newSaleRepo(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := now.Add(-3 * time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(total_price\), 0\), MIN\(created_at\)\s+FROM sales`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"count", "total", "oldest"}).
			AddRow(4, 92.5, oldest))

	count, total, got, err := repo.GetExpiredStats(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(4), count)
	require.Equal(t, 92.5, total)
	require.NotNil(t, got)
	require.Equal(t, oldest, *got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSaleRepository_GetExpiredStats_Empty(t *testing.T) {
	repo, mock := newSaleRepo(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(total_price\), 0\), MIN\(created_at\)\s+FROM sales`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"count", "total", "oldest"}).
			AddRow(0, 0.0, nil))

	count, total, oldest, err := repo.GetExpiredStats(context.Background(), now)
	require.NoError(t, err)
	require.Zero(t, count)
	require.Zero(t, total)
	require.Nil(t, oldest)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSaleRepository_FinalizeSale_AlreadyFinalized(t *testing.T) {
	repo, mock := newSaleRepo(t)

	mock.ExpectExec(`UPDATE sales SET finalized = TRUE, updated_at = \? WHERE id = \? AND finalized = FALSE`).
		WithArgs(sqlmock.AnyArg(), "sale-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.FinalizeSale(context.Background(), "sale-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSaleRepository_DeleteSale(t *testing.T) {
	repo, mock := newSaleRepo(t)

	mock.ExpectExec(`DELETE FROM sales WHERE id = \?`).
		WithArgs("sale-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteSale(context.Background(), "sale-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
