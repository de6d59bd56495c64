package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment. Status defaults to 'pending' if empty.
// Returns ErrPaymentExists when the delivery already has a payment
// (one payment per delivery, enforced by a unique index).
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	if p == nil {
		return nil, errors.New("payment is nil")
	}
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO payments (delivery_id, reference, amount, method, status) VALUES (?,?,?,?,?)`,
		p.DeliveryID, p.Reference, p.Amount, string(p.Method), string(p.Status))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: payments.delivery_id") {
			return nil, ErrPaymentExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p2, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p2 == nil {
		return nil, errors.New("created payment not found")
	}
	return p2, nil
}

// GetByDeliveryID fetches the payment recorded for a delivery, if any.
func (r *PaymentRepository) GetByDeliveryID(ctx context.Context, deliveryID int64) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT id, delivery_id, reference, amount, method, status, created_at FROM payments WHERE delivery_id = ?`, deliveryID)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// UpdateStatus records the simulated gateway outcome for a payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PaymentRepository) getByID(ctx context.Context, id int64) (*models.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, delivery_id, reference, amount, method, status, created_at FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	var method, status string
	if err := row.Scan(&p.ID, &p.DeliveryID, &p.Reference, &p.Amount, &method, &status, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Method = models.PaymentMethod(method)
	p.Status = models.PaymentStatus(status)
	return &p, nil
}
