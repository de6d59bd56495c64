// Package lifecycle is the single authority over the delivery state machine:
// which transitions are legal, who may request them, and which side effects
// (tracking entries, notifications) each committed transition triggers.
package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kedarbajaj/CargoMate-sub000/internal/geo"
	"github.com/kedarbajaj/CargoMate-sub000/models"
	"github.com/kedarbajaj/CargoMate-sub000/repository"
)

// Service wires the delivery repositories and the notification emitter into
// the lifecycle use cases. Transport layers (HTTP handlers) are thin callers.
type Service struct {
	deliveries    repository.DeliveryRepositoryI
	tracking      repository.TrackingRepositoryI
	notifications repository.NotificationRepositoryI
	vendors       repository.VendorRepositoryI
	payments      repository.PaymentRepositoryI
	emitter       *Emitter
	logger        *zap.Logger
}

// NewService creates a new lifecycle Service.
func NewService(
	deliveries repository.DeliveryRepositoryI,
	tracking repository.TrackingRepositoryI,
	notifications repository.NotificationRepositoryI,
	vendors repository.VendorRepositoryI,
	payments repository.PaymentRepositoryI,
	emitter *Emitter,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		deliveries:    deliveries,
		tracking:      tracking,
		notifications: notifications,
		vendors:       vendors,
		payments:      payments,
		emitter:       emitter,
		logger:        logger,
	}
}

// ScheduleInput carries the customer's request to schedule a new delivery.
type ScheduleInput struct {
	UserID        int64
	VendorID      *int64
	PickupAddress string
	DropAddress   string
	WeightKG      float64
	PackageType   models.PackageType
	ScheduledDate string
}

// ScheduleDelivery creates a new pending delivery and fires the creation
// notifications (customer confirmation, vendor alert if pre-assigned, admin
// broadcast). The initial 'pending' status produces no tracking entry.
func (s *Service) ScheduleDelivery(ctx context.Context, in ScheduleInput) (*models.Delivery, error) {
	if strings.TrimSpace(in.PickupAddress) == "" {
		return nil, &ValidationError{Field: "pickup_address", Reason: "required"}
	}
	if strings.TrimSpace(in.DropAddress) == "" {
		return nil, &ValidationError{Field: "drop_address", Reason: "required"}
	}
	if in.WeightKG <= 0 {
		return nil, &ValidationError{Field: "weight_kg", Reason: "must be positive"}
	}
	if in.PackageType == "" {
		in.PackageType = models.PackageTypeStandard
	}
	if !in.PackageType.Valid() {
		return nil, &ValidationError{Field: "package_type", Reason: "unknown value"}
	}
	if strings.TrimSpace(in.ScheduledDate) == "" {
		return nil, &ValidationError{Field: "scheduled_date", Reason: "required"}
	}
	if in.VendorID != nil {
		v, err := s.vendors.GetByID(ctx, *in.VendorID)
		if err != nil {
			return nil, fmt.Errorf("get vendor: %w", err)
		}
		if v == nil {
			return nil, ErrVendorNotFound
		}
	}

	d, err := s.deliveries.Create(ctx, &models.Delivery{
		UserID:        in.UserID,
		VendorID:      in.VendorID,
		PickupAddress: strings.TrimSpace(in.PickupAddress),
		DropAddress:   strings.TrimSpace(in.DropAddress),
		WeightKG:      in.WeightKG,
		PackageType:   in.PackageType,
		ScheduledDate: strings.TrimSpace(in.ScheduledDate),
		Status:        models.DeliveryStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	if err := s.emitter.DeliveryCreated(ctx, d); err != nil {
		s.logger.Warn("notification emission failed", zap.Int64("delivery_id", d.ID), zap.Error(err))
	}
	return d, nil
}

// TransitionInput carries a request to move a delivery to a new status.
// ExpectedStatus is an optional precondition: when set, the request fails
// with ErrStatusConflict if the stored status differs.
type TransitionInput struct {
	DeliveryID     int64
	Requested      models.DeliveryStatus
	ActorID        int64
	ActorRole      string
	ExpectedStatus models.DeliveryStatus
	Lat            *float64
	Lng            *float64
}

// RequestTransition is the single entry point for delivery status changes.
//
// Check order matters: actor membership is verified before transition
// legality so an unrelated caller learns nothing about the delivery's state.
// The status write is a compare-and-swap on the status read here; a lost race
// surfaces as ErrStatusConflict. Once the write commits, tracking and
// notification failures are logged and the transition still succeeds.
func (s *Service) RequestTransition(ctx context.Context, in TransitionInput) (*models.Delivery, error) {
	if !in.Requested.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown value"}
	}
	switch in.ActorRole {
	case models.RoleCustomer, models.RoleVendor, models.RoleAdmin:
	default:
		return nil, &ValidationError{Field: "role", Reason: "unknown value"}
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return nil, &ValidationError{Field: "coordinates", Reason: "lat and lng must be supplied together"}
	}
	if in.Lat != nil && !geo.ValidLatLng(*in.Lat, *in.Lng) {
		return nil, &ValidationError{Field: "coordinates", Reason: "out of range"}
	}

	d, err := s.deliveries.GetByID(ctx, in.DeliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if d == nil {
		return nil, ErrDeliveryNotFound
	}

	if !Authorized(d, in.ActorID, in.ActorRole) {
		return nil, ErrNotAuthorized
	}

	if in.ExpectedStatus != "" && in.ExpectedStatus != d.Status {
		return nil, ErrStatusConflict
	}
	if !CanTransition(d.Status, in.Requested, in.ActorRole) {
		return nil, &InvalidTransitionError{From: d.Status, To: in.Requested}
	}

	if err := s.deliveries.UpdateStatusFrom(ctx, d.ID, d.Status, in.Requested); err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, ErrStatusConflict
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("update delivery status: %w", err)
	}
	d.Status = in.Requested

	// The transition is committed; everything below is best-effort.
	if _, err := s.tracking.Create(ctx, &models.TrackingUpdate{
		DeliveryID:  d.ID,
		StatusLabel: TrackingLabel(d.Status),
		Lat:         in.Lat,
		Lng:         in.Lng,
	}); err != nil {
		s.logger.Warn("tracking append failed", zap.Int64("delivery_id", d.ID), zap.Error(err))
	}
	if err := s.emitter.StatusChanged(ctx, d); err != nil {
		s.logger.Warn("notification emission failed", zap.Int64("delivery_id", d.ID), zap.Error(err))
	}
	return d, nil
}

// AssignVendor sets the vendor on a still-pending delivery. Admin only.
func (s *Service) AssignVendor(ctx context.Context, deliveryID, vendorID int64, actorRole string) (*models.Delivery, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	if v == nil {
		return nil, ErrVendorNotFound
	}

	if err := s.deliveries.AssignVendor(ctx, deliveryID, vendorID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrDeliveryNotFound
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, ErrStatusConflict
		}
		return nil, fmt.Errorf("assign vendor: %w", err)
	}

	d, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if d == nil {
		return nil, ErrDeliveryNotFound
	}

	if err := s.emitter.VendorAssigned(ctx, d, vendorID); err != nil {
		s.logger.Warn("notification emission failed", zap.Int64("delivery_id", d.ID), zap.Error(err))
	}
	return d, nil
}

// GetDelivery returns a delivery visible to the actor. Unrelated actors get
// ErrNotAuthorized regardless of whether the delivery exists.
func (s *Service) GetDelivery(ctx context.Context, id, actorID int64, actorRole string) (*models.Delivery, error) {
	d, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if d == nil {
		return nil, ErrDeliveryNotFound
	}
	if !Authorized(d, actorID, actorRole) {
		return nil, ErrNotAuthorized
	}
	return d, nil
}

// ListDeliveries returns the deliveries the actor may see: customers their
// own, vendors their assignments, admins everything.
func (s *Service) ListDeliveries(ctx context.Context, actorID int64, actorRole string, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error) {
	if status != "" && !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown value"}
	}
	switch actorRole {
	case models.RoleCustomer:
		return s.deliveries.ListByUserID(ctx, actorID, status, limit, offset)
	case models.RoleVendor:
		return s.deliveries.ListByVendorID(ctx, actorID, status, limit, offset)
	case models.RoleAdmin:
		return s.deliveries.ListAll(ctx, status, limit, offset)
	}
	return nil, ErrNotAuthorized
}

// TrackingHistory returns a delivery's tracking entries, newest first, with
// the total distance in kilometers covered between consecutive geo-tagged
// points.
func (s *Service) TrackingHistory(ctx context.Context, deliveryID, actorID int64, actorRole string) ([]models.TrackingUpdate, float64, error) {
	if _, err := s.GetDelivery(ctx, deliveryID, actorID, actorRole); err != nil {
		return nil, 0, err
	}
	updates, err := s.tracking.ListByDeliveryID(ctx, deliveryID)
	if err != nil {
		return nil, 0, fmt.Errorf("list tracking updates: %w", err)
	}

	// Entries are newest first; walk oldest to newest for the distance sum.
	var km float64
	var prev *models.TrackingUpdate
	for i := len(updates) - 1; i >= 0; i-- {
		tu := &updates[i]
		if tu.Lat == nil || tu.Lng == nil {
			continue
		}
		if prev != nil {
			km += geo.HaversineKM(*prev.Lat, *prev.Lng, *tu.Lat, *tu.Lng)
		}
		prev = tu
	}
	return updates, km, nil
}

// PaymentInput carries the customer's request to pay for a delivery.
type PaymentInput struct {
	DeliveryID int64
	ActorID    int64
	ActorRole  string
	Amount     float64
	Method     models.PaymentMethod
}

// RecordPayment records a payment for a delivery and simulates the gateway
// charge. Only the owning customer may pay; one payment per delivery.
func (s *Service) RecordPayment(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !in.Method.Valid() {
		return nil, &ValidationError{Field: "method", Reason: "unknown value"}
	}

	d, err := s.deliveries.GetByID(ctx, in.DeliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if d == nil {
		return nil, ErrDeliveryNotFound
	}
	if in.ActorRole != models.RoleCustomer || d.UserID != in.ActorID {
		return nil, ErrNotAuthorized
	}

	p, err := s.payments.Create(ctx, &models.Payment{
		DeliveryID: d.ID,
		Reference:  uuid.NewString(),
		Amount:     in.Amount,
		Method:     in.Method,
		Status:     models.PaymentStatusPending,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			return nil, ErrPaymentExists
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	// Simulated gateway: the charge always settles.
	if err := s.payments.UpdateStatus(ctx, p.ID, models.PaymentStatusSuccessful); err != nil {
		return nil, fmt.Errorf("settle payment: %w", err)
	}
	p.Status = models.PaymentStatusSuccessful

	if err := s.emitter.PaymentRecorded(ctx, d, p); err != nil {
		s.logger.Warn("notification emission failed", zap.Int64("delivery_id", d.ID), zap.Error(err))
	}
	return p, nil
}

// GetPayment returns the payment for a delivery visible to the actor.
func (s *Service) GetPayment(ctx context.Context, deliveryID, actorID int64, actorRole string) (*models.Payment, error) {
	if _, err := s.GetDelivery(ctx, deliveryID, actorID, actorRole); err != nil {
		return nil, err
	}
	p, err := s.payments.GetByDeliveryID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// Notifications lists the actor's notifications. Vendor principals carry
// their vendor id, so the owning user account is resolved first; admins also
// see NULL-target broadcast rows.
func (s *Service) Notifications(ctx context.Context, actorID int64, actorRole string) ([]models.Notification, error) {
	userID, err := s.resolveUserID(ctx, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	return s.notifications.ListByUserID(ctx, userID, actorRole == models.RoleAdmin)
}

// MarkNotificationRead flips one of the actor's notifications to read.
func (s *Service) MarkNotificationRead(ctx context.Context, id, actorID int64, actorRole string) error {
	userID, err := s.resolveUserID(ctx, actorID, actorRole)
	if err != nil {
		return err
	}
	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *Service) resolveUserID(ctx context.Context, actorID int64, actorRole string) (int64, error) {
	if actorRole != models.RoleVendor {
		return actorID, nil
	}
	v, err := s.vendors.GetByID(ctx, actorID)
	if err != nil {
		return 0, fmt.Errorf("get vendor: %w", err)
	}
	if v == nil {
		return 0, ErrNotAuthorized
	}
	return v.UserID, nil
}
