package models

// NotificationStatus marks whether the owning user has seen a notification.
type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

// Notification is a user-facing message created as a side effect of a
// delivery lifecycle event. UserID is nullable: a null target denotes a
// broadcast visible to admins as a class.
type Notification struct {
	ID        int64              `db:"id" json:"id"`
	UserID    *int64             `db:"user_id" json:"user_id,omitempty"`
	Message   string             `db:"message" json:"message"`
	Status    NotificationStatus `db:"status" json:"status"`
	CreatedAt string             `db:"created_at" json:"created_at"`
}
