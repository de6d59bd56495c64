package models

// DeliveryStatus represents the lifecycle state of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusAccepted  DeliveryStatus = "accepted"
	DeliveryStatusRejected  DeliveryStatus = "rejected"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// Valid reports whether s is one of the six known statuses.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusAccepted, DeliveryStatusRejected,
		DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s DeliveryStatus) Terminal() bool {
	switch s {
	case DeliveryStatusRejected, DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// PackageType classifies how a package must be handled in transit.
type PackageType string

const (
	PackageTypeStandard       PackageType = "standard"
	PackageTypeHandleWithCare PackageType = "handle_with_care"
	PackageTypeFragile        PackageType = "fragile"
	PackageTypeOversized      PackageType = "oversized"
)

// Valid reports whether p is a known package type.
func (p PackageType) Valid() bool {
	switch p {
	case PackageTypeStandard, PackageTypeHandleWithCare, PackageTypeFragile, PackageTypeOversized:
		return true
	}
	return false
}

// Delivery represents a scheduled shipment owned by a customer and
// optionally assigned to a vendor. Status is mutated only through the
// lifecycle service; VendorID is nullable until assignment.
type Delivery struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	VendorID      *int64         `db:"vendor_id" json:"vendor_id,omitempty"`
	PickupAddress string         `db:"pickup_address" json:"pickup_address"`
	DropAddress   string         `db:"drop_address" json:"drop_address"`
	WeightKG      float64        `db:"weight_kg" json:"weight_kg"`
	PackageType   PackageType    `db:"package_type" json:"package_type"`
	ScheduledDate string         `db:"scheduled_date" json:"scheduled_date"`
	Status        DeliveryStatus `db:"status" json:"status"`
	CreatedAt     string         `db:"created_at" json:"created_at"`
}
