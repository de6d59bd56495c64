package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

// NotificationRepository persists user-facing Notification records.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification. A nil UserID stores a NULL target, which is
// treated as a broadcast to admins as a class. Status defaults to 'unread'.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n == nil {
		return nil, errors.New("notification is nil")
	}
	if n.Status == "" {
		n.Status = models.NotificationStatusUnread
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var target any
	if n.UserID != nil {
		target = *n.UserID
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO notifications (user_id, message, status) VALUES (?,?,?)`,
		target, n.Message, string(n.Status))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	n.ID = id
	return n, nil
}

// ListByUserID returns notifications targeted at a user, newest first.
// When includeBroadcast is true (admin callers), NULL-target broadcast rows
// are included as well.
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID int64, includeBroadcast bool) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `SELECT id, user_id, message, status, created_at FROM notifications WHERE user_id = ?`
	if includeBroadcast {
		q += ` OR user_id IS NULL`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var target sql.NullInt64
		var status string
		if err := rows.Scan(&n.ID, &target, &n.Message, &status, &n.CreatedAt); err != nil {
			return nil, err
		}
		if target.Valid {
			v := target.Int64
			n.UserID = &v
		}
		n.Status = models.NotificationStatus(status)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flips a notification owned by userID to 'read'.
// Returns sql.ErrNoRows when no such notification belongs to the user.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET status = ? WHERE id = ? AND user_id = ?`,
		string(models.NotificationStatusRead), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
