package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create inserts a new vendor linked to an existing user account.
func (r *VendorRepository) Create(ctx context.Context, v *models.Vendor) (*models.Vendor, error) {
	if v == nil {
		return nil, errors.New("vendor is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO vendors (user_id, company_name, phone) VALUES (?,?,?)`,
		v.UserID, v.CompanyName, v.Phone)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	v.ID = id
	return v, nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*models.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var v models.Vendor
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id, company_name, phone FROM vendors WHERE id = ?`, id).Scan(&v.ID, &v.UserID, &v.CompanyName, &v.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// GetByUserID fetches the vendor record owned by a user account.
func (r *VendorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var v models.Vendor
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id, company_name, phone FROM vendors WHERE user_id = ?`, userID).Scan(&v.ID, &v.UserID, &v.CompanyName, &v.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) List(ctx context.Context, limit, offset int) ([]models.Vendor, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, company_name, phone FROM vendors ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.UserID, &v.CompanyName, &v.Phone); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
