package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/kedarbajaj/CargoMate-sub000/models"
	"github.com/kedarbajaj/CargoMate-sub000/repository"
)

// Emitter creates Notification records for the parties affected by a delivery
// lifecycle event. Emission is best-effort: callers log a returned error and
// move on, they never roll back the event that triggered it.
type Emitter struct {
	notifications repository.NotificationRepositoryI
	users         repository.UserRepositoryI
	vendors       repository.VendorRepositoryI
}

// NewEmitter creates a new Emitter.
func NewEmitter(notifications repository.NotificationRepositoryI, users repository.UserRepositoryI, vendors repository.VendorRepositoryI) *Emitter {
	return &Emitter{notifications: notifications, users: users, vendors: vendors}
}

// StatusChanged notifies the owning customer after a committed transition.
// For accepted/rejected the message names the vendor's company; if the vendor
// lookup fails the message falls back to the plain status text.
func (e *Emitter) StatusChanged(ctx context.Context, d *models.Delivery) error {
	msg := fmt.Sprintf("Your delivery #%d is now %s", d.ID, d.Status)
	if (d.Status == models.DeliveryStatusAccepted || d.Status == models.DeliveryStatusRejected) && d.VendorID != nil {
		if v, err := e.vendors.GetByID(ctx, *d.VendorID); err == nil && v != nil {
			msg = fmt.Sprintf("Your delivery #%d was %s by %s", d.ID, d.Status, v.CompanyName)
		}
	}
	return e.notify(ctx, &d.UserID, msg)
}

// DeliveryCreated notifies the owning customer, the assigned vendor (if any),
// and the admins about a newly scheduled delivery.
func (e *Emitter) DeliveryCreated(ctx context.Context, d *models.Delivery) error {
	var errs []error

	msg := fmt.Sprintf("Your delivery #%d has been scheduled for %s", d.ID, d.ScheduledDate)
	errs = append(errs, e.notify(ctx, &d.UserID, msg))

	if d.VendorID != nil {
		errs = append(errs, e.notifyVendor(ctx, *d.VendorID,
			fmt.Sprintf("New delivery #%d has been assigned to you", d.ID)))
	}

	errs = append(errs, e.broadcastToAdmins(ctx, fmt.Sprintf("New delivery #%d scheduled", d.ID)))
	return errors.Join(errs...)
}

// VendorAssigned notifies the vendor of a new assignment and tells the
// customer who will handle the delivery.
func (e *Emitter) VendorAssigned(ctx context.Context, d *models.Delivery, vendorID int64) error {
	var errs []error
	errs = append(errs, e.notifyVendor(ctx, vendorID,
		fmt.Sprintf("New delivery #%d has been assigned to you", d.ID)))

	msg := fmt.Sprintf("Your delivery #%d has been assigned to a vendor", d.ID)
	if v, err := e.vendors.GetByID(ctx, vendorID); err == nil && v != nil {
		msg = fmt.Sprintf("Your delivery #%d has been assigned to %s", d.ID, v.CompanyName)
	}
	errs = append(errs, e.notify(ctx, &d.UserID, msg))
	return errors.Join(errs...)
}

// PaymentRecorded confirms a processed payment to the owning customer.
func (e *Emitter) PaymentRecorded(ctx context.Context, d *models.Delivery, p *models.Payment) error {
	return e.notify(ctx, &d.UserID,
		fmt.Sprintf("Payment of %.2f for delivery #%d is %s (ref %s)", p.Amount, d.ID, p.Status, p.Reference))
}

func (e *Emitter) notify(ctx context.Context, userID *int64, msg string) error {
	_, err := e.notifications.Create(ctx, &models.Notification{UserID: userID, Message: msg})
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (e *Emitter) notifyVendor(ctx context.Context, vendorID int64, msg string) error {
	v, err := e.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return fmt.Errorf("get vendor %d: %w", vendorID, err)
	}
	if v == nil {
		return fmt.Errorf("vendor %d not found", vendorID)
	}
	return e.notify(ctx, &v.UserID, msg)
}

// broadcastToAdmins fans out one notification per admin user. When no admins
// can be resolved, a single NULL-target broadcast row is written instead so
// the admin class still sees the event.
func (e *Emitter) broadcastToAdmins(ctx context.Context, msg string) error {
	admins, err := e.users.ListAdmins(ctx)
	if err != nil || len(admins) == 0 {
		berr := e.notify(ctx, nil, msg)
		if err != nil {
			return errors.Join(fmt.Errorf("list admins: %w", err), berr)
		}
		return berr
	}
	var errs []error
	for i := range admins {
		id := admins[i].ID
		errs = append(errs, e.notify(ctx, &id, msg))
	}
	return errors.Join(errs...)
}
