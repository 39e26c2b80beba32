package mysql

import (
	"context"
	"database/sql"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

type MySQLPharmacyRepository struct {
	db *sql.DB
}

func NewMySQLPharmacyRepository(db *sql.DB) *MySQLPharmacyRepository {
	return &MySQLPharmacyRepository{db: db}
}

func (r *MySQLPharmacyRepository) CreatePharmacy(ctx context.Context, pharmacy *domain.Pharmacy) error {
	query := `
        INSERT INTO pharmacies (id, name, address, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		pharmacy.ID, pharmacy.Name, pharmacy.Address, pharmacy.CreatedAt, pharmacy.UpdatedAt)
	return err
}

func (r *MySQLPharmacyRepository) GetPharmacy(ctx context.Context, pharmacyID string) (*domain.Pharmacy, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM pharmacies WHERE id = ?`

	var pharmacy domain.Pharmacy
	err := r.db.QueryRowContext(ctx, query, pharmacyID).Scan(
		&pharmacy.ID, &pharmacy.Name, &pharmacy.Address, &pharmacy.CreatedAt, &pharmacy.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &pharmacy, nil
}

func (r *MySQLPharmacyRepository) ListPharmacies(ctx context.Context) ([]*domain.Pharmacy, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM pharmacies ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pharmacies []*domain.Pharmacy
	for rows.Next() {
		var pharmacy domain.Pharmacy
		err := rows.Scan(&pharmacy.ID, &pharmacy.Name, &pharmacy.Address,
			&pharmacy.CreatedAt, &pharmacy.UpdatedAt)
		if err != nil {
			return nil, err
		}
		pharmacies = append(pharmacies, &pharmacy)
	}

	return pharmacies, rows.Err()
}

func (r *MySQLPharmacyRepository) CreateBranch(ctx context.Context, branch *domain.Branch) error {
	query := `
        INSERT INTO branches (id, pharmacy_id, name, address, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		branch.ID, branch.PharmacyID, branch.Name, branch.Address,
		branch.CreatedAt, branch.UpdatedAt)
	return err
}

func (r *MySQLPharmacyRepository) GetBranch(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `SELECT id, pharmacy_id, name, address, created_at, updated_at FROM branches WHERE id = ?`

	var branch domain.Branch
	err := r.db.QueryRowContext(ctx, query, branchID).Scan(
		&branch.ID, &branch.PharmacyID, &branch.Name, &branch.Address,
		&branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &branch, nil
}

func (r *MySQLPharmacyRepository) ListBranches(ctx context.Context, pharmacyID string) ([]*domain.Branch, error) {
	query := `
        SELECT id, pharmacy_id, name, address, created_at, updated_at
        FROM branches WHERE pharmacy_id = ?
        ORDER BY name ASC
    `

	rows, err := r.db.QueryContext(ctx, query, pharmacyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		var branch domain.Branch
		err := rows.Scan(&branch.ID, &branch.PharmacyID, &branch.Name, &branch.Address,
			&branch.CreatedAt, &branch.UpdatedAt)
		if err != nil {
			return nil, err
		}
		branches = append(branches, &branch)
	}

	return branches, rows.Err()
}

func (r *MySQLPharmacyRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `
        INSERT INTO customers (id, name, phone, email, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Phone, customer.Email,
		customer.CreatedAt, customer.UpdatedAt)
	return err
}

func (r *MySQLPharmacyRepository) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT id, name, phone, email, created_at, updated_at FROM customers WHERE id = ?`

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.Email,
		&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &customer, nil
}

func (r *MySQLPharmacyRepository) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT id, name, phone, email, created_at, updated_at FROM customers ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Email,
			&customer.CreatedAt, &customer.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}

	return customers, rows.Err()
}
