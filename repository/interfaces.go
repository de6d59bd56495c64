package repository

import (
	"context"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

// DeliveryRepositoryI defines operations on Delivery entities.
type DeliveryRepositoryI interface {
	Create(ctx context.Context, d *models.Delivery) (*models.Delivery, error)
	GetByID(ctx context.Context, id int64) (*models.Delivery, error)
	ListByUserID(ctx context.Context, userID int64, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error)
	ListByVendorID(ctx context.Context, vendorID int64, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error)
	ListAll(ctx context.Context, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to models.DeliveryStatus) error
	AssignVendor(ctx context.Context, id, vendorID int64) error
}

// TrackingRepositoryI defines operations on append-only TrackingUpdate entries.
type TrackingRepositoryI interface {
	Create(ctx context.Context, tu *models.TrackingUpdate) (*models.TrackingUpdate, error)
	ListByDeliveryID(ctx context.Context, deliveryID int64) ([]models.TrackingUpdate, error)
}

// NotificationRepositoryI defines operations on Notification entities.
type NotificationRepositoryI interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListByUserID(ctx context.Context, userID int64, includeBroadcast bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, email, role string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

// VendorRepositoryI defines operations on Vendor entities.
type VendorRepositoryI interface {
	Create(ctx context.Context, v *models.Vendor) (*models.Vendor, error)
	GetByID(ctx context.Context, id int64) (*models.Vendor, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]models.Vendor, error)
}

// PaymentRepositoryI defines operations on Payment entities.
type PaymentRepositoryI interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	GetByDeliveryID(ctx context.Context, deliveryID int64) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status models.PaymentStatus) error
}
