package lifecycle

import "github.com/kedarbajaj/CargoMate-sub000/models"

// Display vocabulary for tracking entries, distinct from the canonical
// DeliveryStatus values.
const (
	LabelDispatched = "Dispatched"
	LabelInTransit  = "In Transit"
	LabelDelivered  = "Delivered"
)

// TrackingLabel maps a delivery status to its tracking display label.
// Statuses without a display mapping (rejected, cancelled) fall back to the
// raw status text so the audit trail stays complete and distinguishable.
func TrackingLabel(s models.DeliveryStatus) string {
	switch s {
	case models.DeliveryStatusPending, models.DeliveryStatusAccepted:
		return LabelDispatched
	case models.DeliveryStatusInTransit:
		return LabelInTransit
	case models.DeliveryStatusDelivered:
		return LabelDelivered
	}
	return string(s)
}
