package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

// DeliveryRepository is the core repository for Delivery entities.
type DeliveryRepository struct {
	db *sql.DB
}

// NewDeliveryRepository creates a new DeliveryRepository.
func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

const deliveryColumns = `id, user_id, vendor_id, pickup_address, drop_address, weight_kg, package_type, scheduled_date, status, created_at`

// Create inserts a new delivery. Status defaults to 'pending' if empty.
func (r *DeliveryRepository) Create(ctx context.Context, d *models.Delivery) (*models.Delivery, error) {
	if d == nil {
		return nil, errors.New("delivery is nil")
	}
	if d.Status == "" {
		d.Status = models.DeliveryStatusPending
	}
	if d.PackageType == "" {
		d.PackageType = models.PackageTypeStandard
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var vendor any
	if d.VendorID != nil {
		vendor = *d.VendorID
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO deliveries (user_id, vendor_id, pickup_address, drop_address, weight_kg, package_type, scheduled_date, status) VALUES (?,?,?,?,?,?,?,?)`,
		d.UserID, vendor, d.PickupAddress, d.DropAddress, d.WeightKG, string(d.PackageType), d.ScheduledDate, string(d.Status))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Query back to capture created_at.
	d2, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d2 == nil {
		return nil, fmt.Errorf("created delivery not found: id=%d", id)
	}
	return d2, nil
}

// GetByID fetches a delivery by its ID. Returns (nil, nil) when absent.
func (r *DeliveryRepository) GetByID(ctx context.Context, id int64) (*models.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = ?`, id)
	d, err := scanDelivery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// ListByUserID returns deliveries owned by a customer, newest first.
// An empty status means no status filter.
func (r *DeliveryRepository) ListByUserID(ctx context.Context, userID int64, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error) {
	return r.list(ctx, `user_id = ?`, userID, status, limit, offset)
}

// ListByVendorID returns deliveries assigned to a vendor, newest first.
func (r *DeliveryRepository) ListByVendorID(ctx context.Context, vendorID int64, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error) {
	return r.list(ctx, `vendor_id = ?`, vendorID, status, limit, offset)
}

// ListAll returns all deliveries, newest first. Intended for admin views.
func (r *DeliveryRepository) ListAll(ctx context.Context, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error) {
	return r.list(ctx, ``, 0, status, limit, offset)
}

func (r *DeliveryRepository) list(ctx context.Context, where string, arg int64, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `SELECT ` + deliveryColumns + ` FROM deliveries`
	args := []any{}
	if where != "" {
		q += ` WHERE ` + where
		args = append(args, arg)
	}
	if status != "" {
		if where == "" {
			q += ` WHERE status = ?`
		} else {
			q += ` AND status = ?`
		}
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDeliveryRows(rows)
}

// UpdateStatusFrom updates the delivery status only if the stored status still
// equals from (compare-and-swap). Returns ErrStatusConflict when the row exists
// but its status has moved on, and sql.ErrNoRows when the row is missing.
func (r *DeliveryRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to models.DeliveryStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE deliveries SET status = ? WHERE id = ? AND status = ?`, string(to), id, string(from))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM deliveries WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sql.ErrNoRows
			}
			return err
		}
		return ErrStatusConflict
	}
	return nil
}

// AssignVendor sets vendor_id on a delivery that is still pending.
// Returns ErrStatusConflict when the delivery has already left 'pending'.
func (r *DeliveryRepository) AssignVendor(ctx context.Context, id, vendorID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE deliveries SET vendor_id = ? WHERE id = ? AND status = ?`, vendorID, id, string(models.DeliveryStatusPending))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM deliveries WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sql.ErrNoRows
			}
			return err
		}
		return ErrStatusConflict
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row rowScanner) (*models.Delivery, error) {
	var d models.Delivery
	var status, pkg string
	var vendorID sql.NullInt64
	err := row.Scan(&d.ID, &d.UserID, &vendorID, &d.PickupAddress, &d.DropAddress, &d.WeightKG, &pkg, &d.ScheduledDate, &status, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if vendorID.Valid {
		v := vendorID.Int64
		d.VendorID = &v
	}
	d.Status = models.DeliveryStatus(status)
	d.PackageType = models.PackageType(pkg)
	return &d, nil
}

func scanDeliveryRows(rows *sql.Rows) ([]models.Delivery, error) {
	var out []models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
