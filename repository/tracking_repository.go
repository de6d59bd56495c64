package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

// TrackingRepository persists append-only TrackingUpdate entries.
// Rows are never updated or deleted once written.
type TrackingRepository struct {
	db *sql.DB
}

// NewTrackingRepository creates a new TrackingRepository.
func NewTrackingRepository(db *sql.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// Create appends one tracking entry for a delivery.
func (r *TrackingRepository) Create(ctx context.Context, tu *models.TrackingUpdate) (*models.TrackingUpdate, error) {
	if tu == nil {
		return nil, errors.New("tracking update is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var lat, lng any
	if tu.Lat != nil {
		lat = *tu.Lat
	}
	if tu.Lng != nil {
		lng = *tu.Lng
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO tracking_updates (delivery_id, status_label, lat, lng) VALUES (?,?,?,?)`,
		tu.DeliveryID, tu.StatusLabel, lat, lng)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	tu2, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tu2 == nil {
		return nil, fmt.Errorf("created tracking update not found: id=%d", id)
	}
	return tu2, nil
}

// ListByDeliveryID returns a delivery's tracking history, newest first.
func (r *TrackingRepository) ListByDeliveryID(ctx context.Context, deliveryID int64) ([]models.TrackingUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, delivery_id, status_label, lat, lng, created_at FROM tracking_updates WHERE delivery_id = ? ORDER BY created_at DESC, id DESC`, deliveryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TrackingUpdate
	for rows.Next() {
		tu, err := scanTrackingUpdate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TrackingRepository) getByID(ctx context.Context, id int64) (*models.TrackingUpdate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, delivery_id, status_label, lat, lng, created_at FROM tracking_updates WHERE id = ?`, id)
	tu, err := scanTrackingUpdate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tu, nil
}

func scanTrackingUpdate(row rowScanner) (*models.TrackingUpdate, error) {
	var tu models.TrackingUpdate
	var lat, lng sql.NullFloat64
	if err := row.Scan(&tu.ID, &tu.DeliveryID, &tu.StatusLabel, &lat, &lng, &tu.CreatedAt); err != nil {
		return nil, err
	}
	if lat.Valid {
		v := lat.Float64
		tu.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		tu.Lng = &v
	}
	return &tu, nil
}
