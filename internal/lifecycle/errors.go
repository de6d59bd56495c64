package lifecycle

import (
	"errors"
	"fmt"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

// Typed failures surfaced by the lifecycle service. Authorization failures are
// deliberately generic: callers learn nothing about whether the delivery
// exists under a different owner.
var (
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrStatusConflict   = errors.New("delivery status changed concurrently")
	ErrVendorNotFound   = errors.New("vendor not found")
	ErrPaymentExists    = errors.New("payment already recorded for delivery")
	ErrPaymentNotFound  = errors.New("payment not found")

	ErrNotificationNotFound = errors.New("notification not found")
)

// InvalidTransitionError reports an illegal transition request, carrying the
// current and requested statuses for diagnostics.
type InvalidTransitionError struct {
	From models.DeliveryStatus
	To   models.DeliveryStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid delivery status transition: %s -> %s", e.From, e.To)
}

// ValidationError reports malformed caller input (unknown status, bad weight,
// out-of-range coordinates).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
