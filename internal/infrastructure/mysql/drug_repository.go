package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLDrugRepository struct {
	db *sql.DB
}

func NewMySQLDrugRepository(db *sql.DB) *MySQLDrugRepository {
	return &MySQLDrugRepository{db: db}
}

func (r *MySQLDrugRepository) CreateDrug(ctx context.Context, drug *domain.Drug) error {
	query := `
        INSERT INTO drugs (id, name, brand, quantity, price, expiry_date, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		drug.ID, drug.Name, drug.Brand, drug.Quantity,
		drug.Price, drug.ExpiryDate, drug.CreatedAt, drug.UpdatedAt)
	return err
}

func (r *MySQLDrugRepository) GetDrug(ctx context.Context, drugID string) (*domain.Drug, error) {
	query := `
        SELECT id, name, brand, quantity, price, expiry_date, created_at, updated_at
        FROM drugs WHERE id = ?
    `

	var drug domain.Drug
	err := r.db.QueryRowContext(ctx, query, drugID).Scan(
		&drug.ID, &drug.Name, &drug.Brand, &drug.Quantity,
		&drug.Price, &drug.ExpiryDate, &drug.CreatedAt, &drug.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &drug, nil
}

func (r *MySQLDrugRepository) ListDrugs(ctx context.Context) ([]*domain.Drug, error) {
	query := `
        SELECT id, name, brand, quantity, price, expiry_date, created_at, updated_at
        FROM drugs ORDER BY name ASC
    `
	return r.queryDrugs(ctx, query)
}

func (r *MySQLDrugRepository) UpdateDrug(ctx context.Context, drug *domain.Drug) error {
	query := `
        UPDATE drugs SET name = ?, brand = ?, quantity = ?, price = ?, expiry_date = ?, updated_at = ?
        WHERE id = ?
    `
	result, err := r.db.ExecContext(ctx, query,
		drug.Name, drug.Brand, drug.Quantity, drug.Price,
		drug.ExpiryDate, time.Now(), drug.ID)
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

func (r *MySQLDrugRepository) DeleteDrug(ctx context.Context, drugID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM drugs WHERE id = ?`, drugID)
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

// AdjustQuantity is a single-document atomic update; concurrent restores of
// different sales against the same drug never lose increments.
func (r *MySQLDrugRepository) AdjustQuantity(ctx context.Context, drugID string, delta int) error {
	query := `UPDATE drugs SET quantity = quantity + ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, delta, time.Now(), drugID)
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

func (r *MySQLDrugRepository) GetDrugsExpiringBefore(ctx context.Context, before time.Time) ([]*domain.Drug, error) {
	query := `
        SELECT id, name, brand, quantity, price, expiry_date, created_at, updated_at
        FROM drugs WHERE expiry_date < ?
        ORDER BY expiry_date ASC
    `
	return r.queryDrugs(ctx, query, before)
}

func (r *MySQLDrugRepository) GetLowStockDrugs(ctx context.Context, threshold int) ([]*domain.Drug, error) {
	query := `
        SELECT id, name, brand, quantity, price, expiry_date, created_at, updated_at
        FROM drugs WHERE quantity < ?
        ORDER BY quantity ASC
    `
	return r.queryDrugs(ctx, query, threshold)
}

func (r *MySQLDrugRepository) AssignToBranch(ctx context.Context, drugID, branchID string) error {
	query := `
        INSERT INTO drug_branches (drug_id, branch_id, created_at)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE created_at = created_at
    `
	_, err := r.db.ExecContext(ctx, query, drugID, branchID, time.Now())
	return err
}

func (r *MySQLDrugRepository) RemoveFromBranch(ctx context.Context, drugID, branchID string) error {
	query := `DELETE FROM drug_branches WHERE drug_id = ? AND branch_id = ?`
	_, err := r.db.ExecContext(ctx, query, drugID, branchID)
	return err
}

func (r *MySQLDrugRepository) GetDrugsForBranch(ctx context.Context, branchID string) ([]*domain.Drug, error) {
	query := `
        SELECT d.id, d.name, d.brand, d.quantity, d.price, d.expiry_date, d.created_at, d.updated_at
        FROM drugs d
        JOIN drug_branches db ON db.drug_id = d.id
        WHERE db.branch_id = ?
        ORDER BY d.name ASC
    `
	return r.queryDrugs(ctx, query, branchID)
}

func (r *MySQLDrugRepository) queryDrugs(ctx context.Context, query string, args ...interface{}) ([]*domain.Drug, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drugs []*domain.Drug
	for rows.Next() {
		var drug domain.Drug
		err := rows.Scan(&drug.ID, &drug.Name, &drug.Brand, &drug.Quantity,
			&drug.Price, &drug.ExpiryDate, &drug.CreatedAt, &drug.UpdatedAt)
		if err != nil {
			return nil, err
		}
		drugs = append(drugs, &drug)
	}

	return drugs, rows.Err()
}
