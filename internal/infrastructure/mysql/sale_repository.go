package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

type MySQLSaleRepository struct {
	db *sql.DB
}

func NewMySQLSaleRepository(db *sql.DB) *MySQLSaleRepository {
	return &MySQLSaleRepository{db: db}
}

func (r *MySQLSaleRepository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	query := `
        INSERT INTO sales (id, drug_id, customer_id, quantity, total_price, finalized, expiry_minutes, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		sale.ID, sale.DrugID, sale.CustomerID, sale.Quantity, sale.TotalPrice,
		sale.Finalized, sale.ExpiryMinutes, sale.CreatedAt, sale.UpdatedAt)
	return err
}

func (r *MySQLSaleRepository) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
        SELECT id, drug_id, customer_id, quantity, total_price, finalized, expiry_minutes, created_at, updated_at
        FROM sales WHERE id = ?
    `

	var sale domain.Sale
	err := r.db.QueryRowContext(ctx, query, saleID).Scan(
		&sale.ID, &sale.DrugID, &sale.CustomerID, &sale.Quantity, &sale.TotalPrice,
		&sale.Finalized, &sale.ExpiryMinutes, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &sale, nil
}

func (r *MySQLSaleRepository) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	query := `
        SELECT id, drug_id, customer_id, quantity, total_price, finalized, expiry_minutes, created_at, updated_at
        FROM sales ORDER BY created_at DESC
    `
	return r.querySales(ctx, query)
}

func (r *MySQLSaleRepository) FinalizeSale(ctx context.Context, saleID string) error {
	query := `UPDATE sales SET finalized = TRUE, updated_at = ? WHERE id = ? AND finalized = FALSE`
	result, err := r.db.ExecContext(ctx, query, time.Now(), saleID)
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

func (r *MySQLSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, saleID)
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

// GetExpiredUnfinalized selects sales whose reservation window has lapsed.
// Finalized sales are never selected regardless of age.
func (r *MySQLSaleRepository) GetExpiredUnfinalized(ctx context.Context, now time.Time) ([]*domain.Sale, error) {
	query := `
        SELECT id, drug_id, customer_id, quantity, total_price, finalized, expiry_minutes, created_at, updated_at
        FROM sales
        WHERE finalized = FALSE AND DATE_ADD(created_at, INTERVAL expiry_minutes MINUTE) < ?
        ORDER BY created_at ASC
    `
	return r.querySales(ctx, query, now)
}

func (r *MySQLSaleRepository) GetExpiredStats(ctx context.Context, now time.Time) (int64, float64, *time.Time, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(total_price), 0), MIN(created_at)
        FROM sales
        WHERE finalized = FALSE AND DATE_ADD(created_at, INTERVAL expiry_minutes MINUTE) < ?
    `

	var count int64
	var totalValue float64
	var oldest sql.NullTime

	err := r.db.QueryRowContext(ctx, query, now).Scan(&count, &totalValue, &oldest)
	if err != nil {
		return 0, 0, nil, err
	}

	if !oldest.Valid {
		return count, totalValue, nil, nil
	}
	return count, totalValue, &oldest.Time, nil
}

func (r *MySQLSaleRepository) GetSalesSummary(ctx context.Context, from, to time.Time) (*domain.SalesSummary, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(total_price), 0)
        FROM sales
        WHERE finalized = TRUE AND created_at >= ? AND created_at < ?
    `

	summary := domain.SalesSummary{From: from, To: to}
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&summary.SaleCount, &summary.TotalRevenue)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *MySQLSaleRepository) querySales(ctx context.Context, query string, args ...interface{}) ([]*domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		var sale domain.Sale
		err := rows.Scan(&sale.ID, &sale.DrugID, &sale.CustomerID, &sale.Quantity, &sale.TotalPrice,
			&sale.Finalized, &sale.ExpiryMinutes, &sale.CreatedAt, &sale.UpdatedAt)
		if err != nil {
			return nil, err
		}
		sales = append(sales, &sale)
	}

	return sales, rows.Err()
}
